package cli

import (
	"github.com/spf13/cobra"
)

var (
	packsDir  string
	auditPath string
)

var rootCmd = &cobra.Command{
	Use:   "modguard",
	Short: "ModGuard - content moderation analysis service",
	Long: `ModGuard classifies free-form text against a moderation policy and
produces an actionable risk assessment: suggested tags grouped by category,
a bounded risk score with a discrete level, and a review decision. Three
independent signals feed the assessment: rule-based pattern matching,
sentiment, and negation-aware intent analysis.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&packsDir, "packs", "", "Directory of taxonomy pack YAML files (default: ~/.modguard/packs)")
	rootCmd.PersistentFlags().StringVar(&auditPath, "audit-log", "", "Path to the decision audit log (default: ~/.modguard/audit.jsonl)")
}

func Execute() error {
	return rootCmd.Execute()
}
