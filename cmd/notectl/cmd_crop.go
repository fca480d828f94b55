package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"noteshare/imaging"
)

// cropCmd runs the crop transform locally and writes the resulting
// data URI, ready to pass to 'notes create --image'.
func (a *app) cropCmd() *cobra.Command {
	var (
		region imaging.Region
		output string
	)

	cmd := &cobra.Command{
		Use:   "crop <image-file>",
		Short: "Crop an image into an attachable data URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			dataURI, err := imaging.Crop(src, region)
			if err != nil {
				return err
			}

			if output == "-" || output == "" {
				fmt.Println(dataURI)
				return nil
			}
			return os.WriteFile(output, []byte(dataURI), 0o644)
		},
	}

	cmd.Flags().Float64Var(&region.X, "x", 0, "crop origin X in source pixels")
	cmd.Flags().Float64Var(&region.Y, "y", 0, "crop origin Y in source pixels")
	cmd.Flags().IntVarP(&region.Width, "width", "w", 0, "output width in pixels")
	cmd.Flags().IntVar(&region.Height, "height", 0, "output height in pixels")
	cmd.Flags().Float64VarP(&region.Rotation, "rotation", "r", 0, "clockwise rotation in degrees")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, or - for stdout")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	return cmd
}
