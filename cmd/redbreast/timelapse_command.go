package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redbreast/internal/ffmpeg"
)

func newTimelapseCommand(ctx *commandContext) *cobra.Command {
	var inputFile string
	var step int
	var inputFPS int
	var outputFPS int

	cmd := &cobra.Command{
		Use:   "timelapse",
		Short: "Create a timelapse (sped up) video from a very long normal-speed video",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outputFPS == 0 {
				outputFPS = cfg.Encoder.OutputFPS
			}

			runner, err := ctx.runner()
			if err != nil {
				return err
			}

			output, err := runEncode(cmd, ctx, "timelapse", inputFile, func() (string, error) {
				return runner.Timelapse(cmd.Context(), ffmpeg.TimelapseRequest{
					InputPath: inputFile,
					Step:      step,
					InputFPS:  inputFPS,
					OutputFPS: outputFPS,
				})
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSuccessLine("Created file: "+output, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "Absolute path to the input video")
	cmd.Flags().IntVarP(&step, "step", "s", 10, "Every s-th frame will be sampled from the input video")
	cmd.Flags().IntVar(&inputFPS, "input-fps", 0, "FPS of the input video file")
	cmd.Flags().IntVar(&outputFPS, "output-fps", 0, "Desired FPS of the output video file (default from config)")
	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("input-fps")

	return cmd
}
