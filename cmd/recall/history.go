package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aanchal1810/Oplaite-AI/internal/platform/tui"
	"github.com/aanchal1810/Oplaite-AI/internal/storage"
)

var (
	flagPlain bool
	flagRows  int
)

var historyCmd = &cobra.Command{
	Use:   "history [quiz]",
	Short: "Show past runs",
	Long: `Browse recorded runs per quiz. Without --plain an interactive view
lists every quiz with its best and average precision.

Examples:
  recall history
  recall history capitals
  recall history capitals --plain --rows 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	historyCmd.Flags().IntVar(&flagRows, "rows", storage.DefaultRecentLimit, "Runs to print with --plain")
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	var quiz string
	if len(args) == 1 {
		quiz = args[0]
	}

	store, err := storage.OpenStore(cmd.Context(), app.DB)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagPlain {
		return printHistory(cmd, store, quiz)
	}

	theme, err := tui.ThemeByName(app.Theme)
	if err != nil {
		return err
	}
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunHistory(store, theme, quiz, width, height)
}

// printHistory writes recent runs and, for a single quiz, its totals.
func printHistory(cmd *cobra.Command, store storage.ResultStore, quiz string) error {
	ctx := cmd.Context()
	results, err := store.RecentResults(ctx, quiz, flagRows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tQuiz\tScore\tPrecision\tPlayer\tDate")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%.0f%%\t%s\t%s\n",
			i+1, r.Quiz, r.Correct, r.Total, r.Percent, r.Player,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if quiz == "" {
		return nil
	}
	stats, err := store.QuizStats(ctx, quiz)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nRuns: %d  Best: %.0f%%  Average: %.0f%%  Correct answers: %d\n",
		stats.Runs, stats.BestPercent, stats.AvgPercent, stats.TotalCorrect)
	return nil
}
