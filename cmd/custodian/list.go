package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered cleaners",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		names := a.reg.Names(listAll)
		if len(names) == 0 {
			fmt.Println("no cleaners registered")
			return nil
		}
		fmt.Println("Available cleaners:")
		for _, name := range names {
			if missing := a.reg.MissingRequirements(name); len(missing) > 0 {
				fmt.Printf("  - %s (unavailable, missing: %s)\n", name, strings.Join(missing, ", "))
				continue
			}
			fmt.Printf("  - %s\n", name)
		}
		for _, f := range a.reg.Failures() {
			fmt.Printf("  ! %s (%s): %s\n", f.Name, f.Source, f.Reason)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "include cleaners with unmet requirements")
}
