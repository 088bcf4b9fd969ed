package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanchal1810/Oplaite-AI/internal/platform/tui"
	"github.com/aanchal1810/Oplaite-AI/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve <questions-file>",
	Short: "Host a quiz over SSH",
	Long: `Start an SSH server where every connection plays the given quiz.

Remote players get paced captions instead of audio. Results are stored
under the SSH user name in the configured database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.recall/host_key

Examples:
  recall serve capitals.yaml                    # Listen on :23235
  recall serve capitals.yaml --ssh :2222        # Listen on port 2222
  recall serve capitals.yaml --db postgres://recall@db/recall

Players connect with:
  ssh localhost -p 23235`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	addRunFlags(serveCmd)
	serveCmd.Flags().String("ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().String("host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().Duration("idle-timeout", 0, "Idle timeout before disconnecting (default 30m)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(app, "recall-ssh")

	name, questions, err := loadQuiz(args[0], app, logger)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("%s has no playable questions", args[0])
	}

	runnerCfg, err := loadRunnerConfig(app)
	if err != nil {
		return err
	}
	theme, err := tui.ThemeByName(app.Theme)
	if err != nil {
		return err
	}

	store, err := storage.OpenStore(cmd.Context(), app.DB)
	if err != nil {
		logger.Warn("could not open results database, results will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = app.SSH.Address
	cfg.HostKeyPath = app.SSH.HostKey
	if app.SSH.IdleTimeout > 0 {
		cfg.IdleTimeout = app.SSH.IdleTimeout
	}
	cfg.Theme = theme
	cfg.QuizName = name
	cfg.Questions = questions
	cfg.RunnerConfig = runnerCfg
	cfg.TickRate = app.FPS
	cfg.WPM = app.Speech.WPM

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Serving %q (%d questions) on %s\n", name, len(questions), server.Addr())
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
