package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/timvw/pitch-check/internal/model"
)

var flagExamplesJSON bool

var examplesCmd = &cobra.Command{
	Use:   "examples [n]",
	Short: "List the built-in example proposals",
	Long: `Without arguments, list the built-in example proposals.
With a number, print the full text of that example (1-based), ready to pipe
into "pitch-check evaluate -".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExamples(cmd.OutOrStdout(), args, flagExamplesJSON)
	},
}

func init() {
	examplesCmd.Flags().BoolVar(&flagExamplesJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(w io.Writer, args []string, asJSON bool) error {
	examples := model.Examples()

	if len(args) == 0 {
		if asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(examples)
		}
		for i, ex := range examples {
			fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, ex.Title, ex.Description)
		}
		return nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(examples) {
		return fmt.Errorf("example must be a number between 1 and %d", len(examples))
	}
	ex := examples[n-1]
	if asJSON {
		return json.NewEncoder(w).Encode(ex)
	}
	_, err = fmt.Fprintln(w, ex.FullText)
	return err
}
