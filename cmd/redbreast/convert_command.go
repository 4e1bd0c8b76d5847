package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newToMP4Command(ctx *commandContext) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "to-mp4",
		Short: "Remux a video into an MP4 container without re-encoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := ctx.runner()
			if err != nil {
				return err
			}

			output, err := runEncode(cmd, ctx, "to-mp4", inputFile, func() (string, error) {
				return runner.ToMP4(cmd.Context(), inputFile)
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
	_ = cmd.MarkFlagRequired("input-file")

	return cmd
}
