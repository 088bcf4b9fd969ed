package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aanchal1810/Oplaite-AI/internal/audio"
	"github.com/aanchal1810/Oplaite-AI/internal/config"
	"github.com/aanchal1810/Oplaite-AI/internal/core"
	"github.com/aanchal1810/Oplaite-AI/internal/games/runner"
	"github.com/aanchal1810/Oplaite-AI/internal/plan"
	"github.com/aanchal1810/Oplaite-AI/internal/platform/tui"
	"github.com/aanchal1810/Oplaite-AI/internal/speech"
	"github.com/aanchal1810/Oplaite-AI/internal/storage"
)

var (
	flagPlan    string
	flagSegment int
)

var playCmd = &cobra.Command{
	Use:   "play <questions-file>",
	Short: "Play a quiz",
	Long: `Play the questions in a JSON or YAML file.

Controls:
  Left/A, Right/D  - Change lane (or swipe with the mouse)
  Enter/Space      - Start, and leave the results screen
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

Speech modes:
  auto      - System TTS if installed, captions otherwise
  exec      - System TTS only
  captions  - Paced captions without audio
  off       - No narration, answers roll in right away

With --plan the result is applied to a study plan segment: a score below
50% marks it for redo and inserts a review segment after it.

Examples:
  recall play capitals.yaml
  recall play capitals.yaml --difficulty easy --color 3
  recall play capitals.json --speech captions --wpm 140
  recall play unit1.yaml --plan plan.json --segment 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addRunFlags(playCmd)
	playCmd.Flags().Int("color", 0, "Initial player color (0-8)")
	playCmd.Flags().String("player", "", "Name stored with results (default: $USER)")
	playCmd.Flags().Bool("cues", true, "Play sounds when an answer is hit")
	playCmd.Flags().Float64("cues-volume", 0, "Cue volume, log2 scale (0 unchanged, -1 half)")
	playCmd.Flags().String("speech", "auto", "Speech mode: auto, exec, captions, off")
	playCmd.Flags().String("voice", "", "Voice passed to the speech backend")
	playCmd.Flags().StringVar(&flagPlan, "plan", "", "Study plan file (JSON or YAML) to update")
	playCmd.Flags().IntVar(&flagSegment, "segment", 0, "Index of the plan segment this quiz covers")
}

func runPlay(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the game while it runs.
	logger, closeLog := playLogger(app)
	defer closeLog()

	name, questions, err := loadQuiz(args[0], app, logger)
	if err != nil {
		return err
	}

	var studyPlan plan.Plan
	if flagPlan != "" {
		studyPlan, err = plan.Load(flagPlan)
		if err != nil {
			return err
		}
		if flagSegment < 0 || flagSegment >= len(studyPlan.Segments) {
			return fmt.Errorf("%w: %d of %d", plan.ErrSegmentOutOfRange, flagSegment, len(studyPlan.Segments))
		}
	}

	runnerCfg, err := loadRunnerConfig(app)
	if err != nil {
		return err
	}

	theme, err := tui.ThemeByName(app.Theme)
	if err != nil {
		return err
	}

	synth, err := speech.New(speech.Options{
		Mode:   speech.Mode(app.Speech.Mode),
		WPM:    app.Speech.WPM,
		Voice:  app.Speech.Voice,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	store, err := storage.OpenStore(cmd.Context(), app.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var result *runner.Result
	opts := []runner.Option{
		runner.WithConfig(runnerCfg),
		runner.WithSynthesizer(synth),
		runner.WithPlayerColor(app.PlayerColor),
		runner.WithLogger(logger),
		runner.WithOnComplete(func(r runner.Result) {
			result = &r
			saveResult(store, storage.NewResult(name, app.Player, r.Correct, r.Total), logger)
		}),
	}

	if app.Cues {
		cues := audio.NewCues()
		cues.SetVolume(app.CuesVolume)
		if err := cues.Init(); err != nil {
			logger.Warn("audio cues disabled", "error", err)
		} else {
			defer cues.Close()
			opts = append(opts, runner.WithCues(cues))
		}
	}

	game := runner.New(questions, opts...)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: app.FPS,
	}
	game.Reset(cfg)

	uiOpts := tui.DefaultOptions()
	uiOpts.Theme = theme
	uiOpts.SwipeDeadZone = runnerCfg.Input.SwipeDeadZone
	if err := tui.Run(game, cfg, uiOpts); err != nil {
		return err
	}

	if result == nil {
		return nil
	}
	outcome := plan.Score(result.Correct, result.Total)
	fmt.Printf("%s: %d/%d (%.0f%%) %s, +%d XP\n", name, outcome.Correct, outcome.Total, outcome.Percent, outcome.Verdict, outcome.XP)

	if flagPlan == "" {
		return nil
	}
	return applyPlan(flagPlan, studyPlan, flagSegment, outcome)
}

// applyPlan records outcome in the plan file.
func applyPlan(path string, p plan.Plan, idx int, outcome plan.Outcome) error {
	updated, err := plan.Apply(p, idx, outcome)
	if err != nil {
		return err
	}
	if err := plan.Save(path, updated); err != nil {
		return err
	}

	if outcome.Redo {
		fmt.Printf("Plan updated: %q needs a redo, review added. Progress %d%%\n", p.Segments[idx].Topic, updated.Progress)
	} else {
		fmt.Printf("Plan updated: %q completed. Progress %d%%\n", p.Segments[idx].Topic, updated.Progress)
	}
	return nil
}

// saveResult stores r if a store is available. Failures are logged only.
func saveResult(store storage.ResultStore, r storage.Result, logger *log.Logger) {
	if store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.SaveResult(ctx, r); err != nil {
		logger.Error("could not save result", "error", err)
	}
}

// playLogger writes to ~/.recall/recall.log so log lines never land on
// the game screen.
func playLogger(app *config.App) (*log.Logger, func()) {
	var w io.Writer = io.Discard
	closer := func() {}

	if dir := config.UserDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "recall.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				w = f
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "recall",
		Level:           app.Level(),
	})
	return logger, closer
}
