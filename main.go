package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZacxDev/mp4-shrinker/pkg/types"
	"github.com/ZacxDev/mp4-shrinker/pkg/videoprocessor"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mp4-shrinker <target_size> <input_file> [start_time] [end_time]",
		Short: "Reduce an MP4 file to a target size",
		Long: `mp4-shrinker re-encodes a video with ffmpeg, picking resolution and bitrate
from the target size, and retries up to three times until the output lands
within 95%-100% of the target.

Sizes take a k, m or g suffix (binary multiples). Times are seconds or
minutes:seconds[.fraction].

Examples:
  # Shrink a whole video to about 10 MB
  mp4-shrinker 10m holiday.mp4

  # Keep 1:30 to 2:45 and fit it in 8 MB
  mp4-shrinker 8m holiday.mp4 1:30 2:45`,
		Args:          cobra.RangeArgs(2, 4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runShrink,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.Flags().StringP("config", "c", "", "Config file path (default $MP4_SHRINKER_CONFIG or the user config dir)")
	cmd.Flags().Bool("no-play", false, "Do not open the result or prompt afterwards")
	cmd.Flags().Bool("cleanup", false, "Remove superseded intermediate files without asking")

	return cmd
}

func runShrink(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	noPlay, _ := cmd.Flags().GetBool("no-play")
	cleanup, _ := cmd.Flags().GetBool("cleanup")

	logger := newLogger(cmd.ErrOrStderr(), verbose)

	settings, err := videoprocessor.LoadSettings(configPath)
	if err != nil {
		return err
	}

	opts := &videoprocessor.ShrinkVideoOptions{
		TargetSize: args[0],
		InputPath:  args[1],
		Settings:   settings,
		Logger:     logger,
		Report:     cmd.OutOrStdout(),
	}
	if len(args) > 2 {
		opts.StartTime = args[2]
	}
	if len(args) > 3 {
		opts.EndTime = args[3]
	}

	result, err := videoprocessor.ShrinkVideo(opts)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), result)

	prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if !noPlay {
		fmt.Fprintf(cmd.OutOrStdout(), "\nPlaying: %s\n", result.OutputPath)
		if err := videoprocessor.PlayVideo(result.OutputPath, settings); err != nil {
			logger.WithError(err).Warn("could not open the output")
		}
		if prompt.interactive() {
			prompt.waitForEnter("\nPress Enter when you're done watching the video...")
			cleanup = cleanup || prompt.confirm("Do you want to clean up intermediate files? (y/n): ")
		}
	}

	if cleanup {
		if _, err := videoprocessor.CleanupIntermediates(result.OutputPath, logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleanup completed.")
	}
	return nil
}

func printResult(w io.Writer, result *types.Result) {
	switch result.Outcome {
	case types.OutcomeConverged:
		fmt.Fprintf(w, "\nDone after %d iteration(s): %s (%s)\n",
			result.Iterations, result.OutputPath, videoprocessor.FormatSize(result.OutputSize))
	case types.OutcomeMaxIterationsReached:
		fmt.Fprintf(w, "\nBest result after %d iterations: %s (%s)\n",
			result.Iterations, result.OutputPath, videoprocessor.FormatSize(result.OutputSize))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
