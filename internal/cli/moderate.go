package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"modguard/internal/auditlog"
	"modguard/internal/config"
)

var (
	moderateJSON      bool
	moderateSentiment bool
	moderateNoAudit   bool
)

var moderateCmd = &cobra.Command{
	Use:   "moderate [text]",
	Short: "Analyze a single text from the command line",
	Long: `Runs the full moderation analysis over one text and prints the result.
The text is taken from the argument, or from stdin when piped:

  modguard moderate "you are a wonderful person"
  cat post.txt | modguard moderate

Output is human-readable on a terminal, JSON otherwise (or with --json).`,
	Args: cobra.MaximumNArgs(1),
	RunE: moderateCommand,
}

func init() {
	moderateCmd.Flags().BoolVar(&moderateJSON, "json", false, "Always print JSON output")
	moderateCmd.Flags().BoolVar(&moderateSentiment, "sentiment", true, "Include the sentiment signal in the output")
	moderateCmd.Flags().BoolVar(&moderateNoAudit, "no-audit", false, "Skip writing the decision to the audit log")
	rootCmd.AddCommand(moderateCmd)
}

func moderateCommand(cmd *cobra.Command, args []string) error {
	text, err := readText(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(packsDir, auditPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc, _, err := buildService(cfg, zap.NewNop())
	if err != nil {
		return err
	}

	result, err := svc.Moderate(cmd.Context(), text, moderateSentiment)
	if err != nil {
		return err
	}

	if !moderateNoAudit {
		logDecisionToAudit(cfg.AuditLogPath, result.Text,
			result.RiskAssessment.Score, string(result.RiskAssessment.Level), result.RequiresReview)
	}

	if moderateJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Risk:   %s (score %.4f)\n", result.RiskAssessment.Level, result.RiskAssessment.Score)
	fmt.Printf("Review: %v\n", result.RequiresReview)
	if len(result.SuggestedTags) == 0 {
		fmt.Println("Tags:   none")
	} else {
		fmt.Println("Tags:")
		for category, tags := range result.SuggestedTags {
			fmt.Printf("  %-16s %s\n", category, strings.Join(tags, ", "))
		}
	}
	if result.Sentiment != nil {
		fmt.Printf("Sentiment: %s (%.2f, %s)\n",
			result.Sentiment.Label, result.Sentiment.Confidence, result.Sentiment.Source)
	}
	if result.Intent != nil && len(result.Intent.DetectedCategories) > 0 {
		fmt.Printf("Intent: %s (%s)\n",
			result.Intent.OverallRisk, strings.Join(result.Intent.DetectedCategories, ", "))
	}
	return nil
}

func readText(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no text given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func logDecisionToAudit(path, text string, score float64, level string, review bool) {
	audit, err := auditlog.New(path)
	if err != nil {
		return
	}
	defer func() { _ = audit.Close() }()
	_ = audit.Log(auditlog.Entry{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Text:           text,
		Score:          score,
		Level:          level,
		RequiresReview: review,
		Source:         "cli",
	})
}
