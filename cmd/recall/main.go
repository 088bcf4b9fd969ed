// recall is a lane runner quiz for the terminal. Each question is read
// aloud, then its three answers approach as tiles and the player steers
// into the right one.
//
// Usage:
//
//	recall play <questions-file>     - Play a quiz in the terminal
//	recall serve <questions-file>    - Host a quiz over SSH
//	recall history [quiz]            - Show past runs
//	recall validate <questions-file> - Check a question file
//	recall voices                    - Show the detected speech backend
//
// Global flags:
//
//	--config <path>    - Settings file (default: ./recall.yaml or ~/.recall/recall.yaml)
//	--db <dsn>         - SQLite path or postgres:// URL (default: ~/.recall/results.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--theme <name>     - dark or light
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aanchal1810/Oplaite-AI/internal/config"
	"github.com/aanchal1810/Oplaite-AI/internal/quiz"
)

var flagConfigFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Recall - answer quiz questions by steering into the right lane",
	Long: `Recall is a terminal quiz game. Each question is narrated, then three
answer tiles roll toward you. Steer into the correct one before it arrives.

Available commands:
  play      - Play a question file in this terminal
  serve     - Host a question file over SSH
  history   - View past runs
  validate  - Check a question file
  voices    - Show the speech backend in use

Examples:
  recall play capitals.yaml
  recall play capitals.json --difficulty hard --speech captions
  recall serve capitals.yaml --ssh :2222
  recall history capitals`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Path to recall.yaml settings")
	rootCmd.PersistentFlags().String("db", "~/.recall/results.db", "SQLite path or postgres:// URL for results")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("theme", "dark", "Color theme: dark or light")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(voicesCmd)
}

// addRunFlags registers the flags shared by play and serve.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("fps", 60, "Tick rate (frames per second)")
	cmd.Flags().String("difficulty", "fixed", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().String("runner-config", "", "Path to custom runner YAML")
	cmd.Flags().Int("wpm", 170, "Narration pace in words per minute")
	cmd.Flags().Int("limit", 6, "Questions per run (0 = all)")
	cmd.Flags().Bool("progressive", true, "Order questions easy to hard")
}

// loadApp reads settings with cmd's flags taking precedence.
func loadApp(cmd *cobra.Command) (*config.App, error) {
	return config.LoadApp(flagConfigFile, cmd.Flags())
}

// newLogger returns a logger at the configured level.
func newLogger(app *config.App, prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           app.Level(),
	})
}

// loadRunnerConfig loads the runner tuning and applies the difficulty preset.
func loadRunnerConfig(app *config.App) (config.RunnerConfig, error) {
	return config.LoadRunnerPreset(app.RunnerConfig, app.Preset())
}

// loadQuiz reads a question file and picks the questions of one run.
// Invalid questions are dropped before the limit is applied.
func loadQuiz(path string, app *config.App, logger *log.Logger) (string, []quiz.Question, error) {
	set, err := quiz.Load(path)
	if err != nil {
		return "", nil, err
	}
	for _, p := range set.Problems {
		logger.Warn("skipping record", "file", path, "err", p)
	}

	questions, problems := quiz.Filter(set.Questions)
	for _, p := range problems {
		logger.Warn("skipping question", "file", path, "err", p)
	}
	if app.Quiz.Progressive {
		questions = quiz.Progressive(questions)
	}
	questions = quiz.Limit(questions, app.Quiz.Limit)

	return quizName(path, set.Title), questions, nil
}

// quizName is the title of the set, or the file name without extension.
func quizName(path, title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
