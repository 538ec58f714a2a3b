package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"modguard/internal/auditlog"
	"modguard/internal/config"
)

var (
	logFilterLevel  string
	logFilterReview bool
	logLast         int
	logSummary      bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the decision audit log",
	Long: `View the ModGuard audit log with filtering and summary options.

Examples:
  modguard log                   # Show all entries
  modguard log --last 20         # Show last 20 entries
  modguard log --level HIGH      # Show only HIGH-risk decisions
  modguard log --review          # Show only decisions flagged for review
  modguard log --summary         # Show summary statistics`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterLevel, "level", "", "Filter by risk level (HIGH, MEDIUM, LOW, MINIMAL)")
	logCmd.Flags().BoolVar(&logFilterReview, "review", false, "Show only entries that required review")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(packsDir, auditPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	entries, err := auditlog.Read(cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No audit log entries found.")
		return nil
	}

	filtered := filterEntries(entries)

	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(entries)
		return nil
	}

	printEntries(filtered)
	return nil
}

func filterEntries(entries []auditlog.Entry) []auditlog.Entry {
	if logFilterLevel == "" && !logFilterReview {
		return entries
	}

	var filtered []auditlog.Entry
	for _, e := range entries {
		if logFilterLevel != "" && !strings.EqualFold(e.Level, logFilterLevel) {
			continue
		}
		if logFilterReview && !e.RequiresReview {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEntries(entries []auditlog.Entry) {
	for _, e := range entries {
		reviewStr := ""
		if e.RequiresReview {
			reviewStr = " [REVIEW]"
		}

		fmt.Printf("%s %-8s %.4f%s\n", formatTimestamp(e.Timestamp), e.Level, e.Score, reviewStr)
		if len(e.Tags) > 0 {
			fmt.Printf("     Tags: %s\n", strings.Join(e.Tags, ", "))
		}
		fmt.Printf("     Text: %s\n", e.Text)
		fmt.Println()
	}
}

func printSummary(entries []auditlog.Entry) {
	counts := map[string]int{}
	reviewCount := 0
	for _, e := range entries {
		counts[e.Level]++
		if e.RequiresReview {
			reviewCount++
		}
	}

	fmt.Println("ModGuard Audit Summary")
	fmt.Println("──────────────────────")
	fmt.Printf("Total decisions:  %d\n", len(entries))
	fmt.Printf("HIGH:             %d\n", counts["HIGH"])
	fmt.Printf("MEDIUM:           %d\n", counts["MEDIUM"])
	fmt.Printf("LOW:              %d\n", counts["LOW"])
	fmt.Printf("MINIMAL:          %d\n", counts["MINIMAL"])
	fmt.Printf("Flagged for review: %d\n", reviewCount)

	if len(entries) > 0 {
		fmt.Printf("First decision:   %s\n", formatTimestamp(entries[0].Timestamp))
		fmt.Printf("Last decision:    %s\n", formatTimestamp(entries[len(entries)-1].Timestamp))
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
