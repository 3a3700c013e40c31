package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/timvw/pitch-check/internal/evaluator"
	"github.com/timvw/pitch-check/internal/model"
	"github.com/timvw/pitch-check/internal/ui"
	"golang.org/x/term"
)

var (
	flagFile   string
	flagOutput string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [proposal...]",
	Short: "Evaluate a single business proposal",
	Long: `Evaluate one business proposal and print the result.

The proposal is taken from the arguments (joined with spaces), from --file,
or from standard input when the only argument is "-".

Exactly one model call is made. Invalid or incomplete model responses are
reported as errors, never repaired.`,
	Example: `  pitch-check evaluate "A subscription box for artisanal coffee"
  pitch-check examples 2 | pitch-check evaluate -
  pitch-check evaluate --file proposal.txt --output text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proposal, err := readProposal(args, flagFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if flagOutput != "json" && flagOutput != "text" {
			return fmt.Errorf("unknown output format %q (supported: json, text)", flagOutput)
		}

		ctx := cmd.Context()
		a, err := newApp(ctx, cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		if a.cfg.TimeoutDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.cfg.TimeoutDuration)
			defer cancel()
		}

		res, err := a.client.Evaluate(ctx, proposal)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if flagOutput == "text" {
			return renderText(out, res, markdownStyleFor(out))
		}
		return renderJSON(out, res)
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&flagFile, "file", "f", "", "read the proposal from a file")
	evaluateCmd.Flags().StringVarP(&flagOutput, "output", "o", "json", "output format: json, text")
	rootCmd.AddCommand(evaluateCmd)
}

// readProposal resolves the proposal text from args, a file, or stdin.
func readProposal(args []string, file string, stdin io.Reader) (string, error) {
	var text string
	switch {
	case file != "" && len(args) > 0:
		return "", fmt.Errorf("use either --file or arguments, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading proposal: %w", err)
		}
		text = string(data)
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading proposal from stdin: %w", err)
		}
		text = string(data)
	default:
		text = strings.Join(args, " ")
	}
	if model.IsBlank(text) {
		return "", fmt.Errorf("no proposal given: pass it as arguments, with --file, or on stdin with -")
	}
	return text, nil
}

type evaluationOutput struct {
	Evaluation *model.BusinessEvaluation `json:"evaluation"`
	Usage      model.TokenUsage          `json:"usage"`
	RequestID  string                    `json:"requestId"`
	Provider   string                    `json:"provider"`
	Model      string                    `json:"model"`
	DurationMS int64                     `json:"durationMs"`
}

func renderJSON(w io.Writer, res *evaluator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(evaluationOutput{
		Evaluation: res.Evaluation,
		Usage:      res.Usage,
		RequestID:  res.RequestID,
		Provider:   res.Provider,
		Model:      res.Model,
		DurationMS: res.Duration.Milliseconds(),
	})
}

// markdownStyleFor picks a colored markdown style for terminals and a plain
// one for pipes and files.
func markdownStyleFor(w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ui.MarkdownPlain
	}
	if lipgloss.HasDarkBackground() {
		return ui.MarkdownDark
	}
	return ui.MarkdownLight
}

func renderText(w io.Writer, res *evaluator.Result, mdStyle string) error {
	ev := res.Evaluation
	var b strings.Builder

	fmt.Fprintf(&b, "Score: %.0f/%d (%s)\n\n", ev.OverallScore, model.MaxScore, model.ScoreBand(ev.OverallScore))
	fmt.Fprintf(&b, "%s\n", ev.Summary)

	writeSection := func(title string, items []string) {
		fmt.Fprintf(&b, "\n%s:\n", title)
		if len(items) == 0 {
			b.WriteString("  (none)\n")
		}
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	writeSection("Strengths", ev.SWOT.Strengths)
	writeSection("Weaknesses", ev.SWOT.Weaknesses)
	writeSection("Opportunities", ev.SWOT.Opportunities)
	writeSection("Threats", ev.SWOT.Threats)

	fmt.Fprintf(&b, "\nRisk assessment:\n%s\n", ui.RenderMarkdown(ev.RiskAssessment, 80, mdStyle))
	writeSection("Strategic suggestions", ev.StrategicSuggestions)

	_, err := io.WriteString(w, b.String())
	return err
}
