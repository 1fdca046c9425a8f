package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdm0006/custodian/pkg/cleaner"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show a cleaner's metadata and capabilities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		name := args[0]
		meta, err := a.reg.Describe(name)
		if err != nil {
			return err
		}
		fmt.Printf("Cleaner: %s\n", meta.Name)
		fmt.Printf("  Source:           %s\n", meta.Source)
		fmt.Printf("  Description:      %s\n", meta.Description)
		fmt.Printf("  Update frequency: %s\n", meta.UpdateFrequency)
		if meta.URL != "" {
			fmt.Printf("  URL:              %s\n", meta.URL)
		}
		if len(meta.Requires) > 0 {
			fmt.Printf("  Requires:         %s\n", strings.Join(meta.Requires, ", "))
		}
		if missing := a.reg.MissingRequirements(name); len(missing) > 0 {
			fmt.Printf("  Unavailable, missing: %s\n", strings.Join(missing, ", "))
			return nil
		}
		reg, err := a.reg.Get(name)
		if err != nil {
			return err
		}
		caps := cleaner.Probe(reg.New())
		fmt.Println("Capabilities:")
		fmt.Printf("  Download to memory: %s\n", mark(caps.DownloadFrame))
		fmt.Printf("  Download to disk:   %s\n", mark(caps.DownloadPath))
		fmt.Printf("  Clean in memory:    %s\n", mark(caps.CleanFrame))
		fmt.Printf("  Clean from disk:    %s\n", mark(caps.CleanPath))
		if len(reg.Checks) > 0 {
			var names []string
			for n := range reg.Checks {
				names = append(names, n)
			}
			sort.Strings(names)
			fmt.Printf("Custom checks: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
