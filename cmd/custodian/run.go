package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/pipeline"
	"github.com/wdm0006/custodian/pkg/profile"
)

var (
	runAll        bool
	runParallel   bool
	runDisk       bool
	runSkipChecks bool
	runOutputDir  string
	runFormat     string
)

var runCmd = &cobra.Command{
	Use:   "run [name...]",
	Short: "Run cleaners and persist their cleaned output",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if runOutputDir != "" {
			a.cfg.OutputDir = runOutputDir
		}
		if runFormat != "" {
			a.cfg.Format = runFormat
		}
		a.runner = pipeline.New(a.reg, check.NewRunner(a.checks, a.log), a.cfg, a.log)

		names := args
		if runAll {
			names = a.reg.Names(false)
		}
		if len(names) == 0 {
			return errors.New("no cleaner specified; pass a name or --all")
		}
		opts := pipeline.Options{PreferDisk: runDisk, SkipChecks: runSkipChecks}

		if len(names) == 1 && !runAll {
			res, err := a.runner.Run(cmd.Context(), names[0], opts)
			if res != nil && res.Report.Total > 0 {
				printReport(res.Report)
			}
			if err != nil {
				return err
			}
			fmt.Printf("\nSaved %d rows to %s\n", res.Frame.Rows(), res.OutputPath)
			fmt.Print(profile.Summary(profile.Collect(res.Frame)))
			return nil
		}

		results := a.runner.RunMany(cmd.Context(), names, runParallel, opts)
		fmt.Printf("\n%d/%d cleaners succeeded\n", len(results), len(names))
		for _, name := range names {
			if f, ok := results[name]; ok {
				fmt.Printf("  + %s: %d rows\n", name, f.Rows())
			} else {
				fmt.Printf("  - %s: failed (see log)\n", name)
			}
		}
		if len(results) == 0 {
			return errors.New("every cleaner in the batch failed")
		}
		return nil
	},
}

func printReport(r check.Report) {
	fmt.Printf("\nCheck results: %d/%d passed\n", r.PassedCount, r.Total)
	for _, o := range r.Outcomes() {
		status := "PASS"
		if !o.Passed {
			status = "FAIL"
			if o.Severity == check.SeverityWarning {
				status = "WARN"
			}
		}
		fmt.Printf("  [%s] %s: %s\n", status, o.Name, o.Message)
	}
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "run every available cleaner")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false, "run the batch with a worker pool")
	runCmd.Flags().BoolVar(&runDisk, "disk", false, "prefer disk-based download when available")
	runCmd.Flags().BoolVar(&runSkipChecks, "skip-checks", false, "persist output without validating")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "override configured output directory")
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: csv, jsonl or parquet")
}
