package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahayak-ai/sahayak/internal/catalog"
	"github.com/sahayak-ai/sahayak/internal/config"
	"github.com/sahayak-ai/sahayak/internal/domain"
	"github.com/sahayak-ai/sahayak/internal/eligibility"
)

var checkCmd = &cobra.Command{
	Use:   "check <profile.json>",
	Short: "Evaluate a saved profile against the scheme catalog",
	Long: `Check skips the conversation and scores a JSON profile file directly.
The file uses the same shape as the /profile API response, for example:

  {"age": 35, "annual_income": 400000, "occupation": "farmer",
   "location": {"is_rural": true}, "categories": ["OBC"]}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemes, err := catalog.Load(catalogPath(cmd))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}

		var profile domain.UserProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			return fmt.Errorf("parse profile: %w", err)
		}

		engine := eligibility.NewEngine(schemes,
			eligibility.WithProvisionalThreshold(config.EligibilityThreshold()))
		report := engine.Evaluate(profile)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Eligible (%d):\n", len(report.Eligible))
		for _, r := range report.Eligible {
			fmt.Printf("  %s (%.0f%%)\n", r.Name, r.MatchScore)
			for _, reason := range r.MatchedReasons {
				fmt.Printf("    + %s\n", reason)
			}
			if len(r.MissingFields) > 0 {
				fmt.Printf("    ? missing: %s\n", strings.Join(r.MissingFields, ", "))
			}
		}

		fmt.Printf("Not eligible (%d):\n", len(report.Ineligible))
		for _, r := range report.Ineligible {
			fmt.Printf("  %s (%.0f%%)\n", r.Name, r.MatchScore)
			for _, reason := range r.UnmetReasons {
				fmt.Printf("    - %s\n", reason)
			}
			if len(r.MissingFields) > 0 {
				fmt.Printf("    ? missing: %s\n", strings.Join(r.MissingFields, ", "))
			}
		}

		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("json", false, "output the full report as JSON")

	rootCmd.AddCommand(checkCmd)
}
