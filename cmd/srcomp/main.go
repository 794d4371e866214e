// Command srcomp is the offline competition-state CLI: it builds, validates
// and inspects a compstate directory without needing the HTTP server or any
// of its databases running.
//
// Usage:
//
//	srcomp build ./compstate
//	srcomp validate ./compstate
//	srcomp awards ./compstate
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"srcomp/internal/comp/compstate"
)

var logger = log.New(os.Stdout, "[srcomp] ", log.LstdFlags)

func main() {
	root := &cobra.Command{
		Use:   "srcomp",
		Short: "Build, validate and inspect a competition state directory",
	}

	root.AddCommand(buildCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(awardsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <compstate-dir>",
		Short: "Build the competition and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := compstate.Load(args[0], compstate.Options{})
			if err != nil {
				return err
			}
			logger.Printf("state commit: %s", comp.StateCommit)
			logger.Printf("teams: %d", len(comp.Teams))
			logger.Printf("matches scheduled: %d", comp.Schedule.NMatches())
			if last := comp.Scores.LastScoredMatch(); last != nil {
				logger.Printf("last scored match: %d", *last)
			} else {
				logger.Printf("no matches scored yet")
			}
			if len(comp.Warnings.Warnings) > 0 {
				logger.Printf("%d validation warnings", len(comp.Warnings.Warnings))
			}
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <compstate-dir>",
		Short: "Build the competition and exit non-zero if any warning is found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := compstate.Load(args[0], compstate.Options{})
			if err != nil {
				return err
			}
			if len(comp.Warnings.Warnings) == 0 {
				logger.Println("no warnings")
				return nil
			}
			for _, w := range comp.Warnings.Warnings {
				logger.Println(w.String())
			}
			return fmt.Errorf("%d validation warnings", len(comp.Warnings.Warnings))
		},
	}
}

func awardsCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "awards <compstate-dir>",
		Short: "Build the competition and print the computed awards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := compstate.Load(args[0], compstate.Options{})
			if err != nil {
				return err
			}

			if jsonOutput {
				out := make(map[string][]string, len(comp.Awards))
				for award, tlas := range comp.Awards {
					out[string(award)] = tlas
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for award, tlas := range comp.Awards {
				logger.Printf("%s: %v", award, tlas)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print awards as JSON")
	return cmd
}
