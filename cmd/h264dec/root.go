/*
DESCRIPTION
  root.go wires the cobra command front end: flag parsing, logger setup,
  and the Annex-B-file-to-y4m-file driving loop. It contains no decoding
  logic of its own, only calls into the decoder package's public API.

AUTHORS
  h264dec contributors, grounded on bugVanisher-streamer's cmd/root.go
  rootCmd/PersistentPreRun/Execute pattern.
*/

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coastwatch/h264dec/decoder"
	log "github.com/coastwatch/h264dec/internal/log"
)

var (
	flagOutput   string
	flagDebug    bool
	flagLogLevel string
	flagSeek     int
	flagEnd      int
	flagStep     int
)

var rootCmd = &cobra.Command{
	Use:   "h264dec [flags] input.264",
	Short: "Decode an Annex-B H.264 elementary stream to y4m",
	Long: "h264dec reads a raw Annex-B H.264 elementary stream (not an MP4\n" +
		"container) and writes its decoded pictures to a y4m file, one frame\n" +
		"per decoded picture in decoding order.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
	RunE: runDecode,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "out.y4m", "y4m output path")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable per-macroblock debug tracing")
	rootCmd.Flags().IntVar(&flagSeek, "seek", 0, "first decoded picture index to keep")
	rootCmd.Flags().IntVar(&flagEnd, "end", 0, "last decoded picture index to keep (0 means to the end of stream)")
	rootCmd.Flags().IntVar(&flagStep, "step", 1, "keep every step'th decoded picture")
}

// initLogger configures the package-level logger's console writer and
// level from --log-level, mirroring bugVanisher-streamer's initLogger.
func initLogger() {
	lvl, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.L = log.L.Level(lvl)
}

// Execute runs the root command, returning a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("h264dec: could not read input file: %w", err)
	}

	d := decoder.New(decoder.Config{
		Debug: flagDebug,
		Seek:  flagSeek,
		End:   flagEnd,
		Step:  flagStep,
	})

	pics, err := d.DecodeAnnexB(data)
	if err != nil {
		return fmt.Errorf("h264dec: decode failed: %w", err)
	}
	if len(pics) == 0 {
		return fmt.Errorf("h264dec: input produced no decoded pictures")
	}

	out, err := os.Create(flagOutput)
	if err != nil {
		return fmt.Errorf("h264dec: could not create output file: %w", err)
	}
	defer out.Close()

	if err := writeY4M(out, pics); err != nil {
		return fmt.Errorf("h264dec: could not write y4m output: %w", err)
	}

	log.L.Info().Int("pictures", len(pics)).Str("output", flagOutput).Msg("decode complete")
	return nil
}
