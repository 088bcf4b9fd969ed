package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aanchal1810/Oplaite-AI/internal/speech"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "Show the speech backend",
	Long: `Print the text-to-speech program recall would use in auto mode.
Supported programs, in order: espeak-ng, espeak, say, spd-say.`,
	Args: cobra.NoArgs,
	RunE: runVoices,
}

func runVoices(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	backend, err := speech.DetectBackend()
	if errors.Is(err, speech.ErrNoSpeechBackend) {
		fmt.Fprintln(out, "No speech backend found; questions are shown as paced captions.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n", backend.Name, backend.Path)
	return nil
}
