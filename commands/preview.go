package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/overlayfx/go-chat-overlay/internal/core/fade"
	"github.com/overlayfx/go-chat-overlay/internal/data/loader"
	"github.com/overlayfx/go-chat-overlay/internal/presentation/formatter"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the messages active at a playback time",
	Long: `preview lists the chat messages that would be visible at the given playback
time, with their current fade alpha, without rendering any pixels.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	initLogging()

	if dataFile == "" {
		return fmt.Errorf("--data is required")
	}

	query, err := resolveStartTime()
	if err != nil {
		return err
	}

	timeline, err := loader.Load(expandPath(dataFile))
	if err != nil {
		return err
	}

	timing := fade.Timing{FadeIn: fadeInTime, Hold: holdTime, FadeOut: fadeOutTime}.Clamp()
	f := formatter.NewPreviewFormatter(terminalWidth())
	fmt.Fprint(cmd.OutOrStdout(), f.Format(timeline, query, timing))
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return 100
	}
	return width
}
