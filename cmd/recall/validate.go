package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aanchal1810/Oplaite-AI/internal/quiz"
)

var validateCmd = &cobra.Command{
	Use:   "validate <questions-file>",
	Short: "Check a question file",
	Long: `Decode a question file and report every question that cannot be played:
missing text, not exactly three options, empty options, or a correct
index outside 0-2.

Examples:
  recall validate capitals.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	set, err := quiz.Load(args[0])
	if err != nil {
		return err
	}

	valid, problems := quiz.Filter(set.Questions)
	problems = append(set.Problems, problems...)

	out := cmd.OutOrStdout()
	for _, p := range problems {
		fmt.Fprintf(out, "  invalid: %v\n", p)
	}
	fmt.Fprintf(out, "%s: %d playable, %d invalid\n", quizName(args[0], set.Title), len(valid), len(problems))

	if len(problems) > 0 {
		return fmt.Errorf("%d invalid question(s) in %s", len(problems), args[0])
	}
	return nil
}
