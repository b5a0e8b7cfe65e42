package main

import (
	"fmt"

	"github.com/ironsheep/colorimetry-mcp/internal/imaging"
	"github.com/spf13/cobra"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <input> <output>",
	Short: "Apply brightness, contrast, saturation, sharpness and mode to an image",
	Long: `adjust applies the enhancement stages in their fixed order: brightness,
contrast, saturation, sharpness, then mode conversion. Each factor is a
multiplier in [0,2] where 1 leaves the image unchanged.

The output format follows the output file extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().Float64("brightness", 1, "Brightness factor")
	adjustCmd.Flags().Float64("contrast", 1, "Contrast factor")
	adjustCmd.Flags().Float64("saturation", 1, "Saturation factor")
	adjustCmd.Flags().Float64("sharpness", 1, "Sharpness factor")
	adjustCmd.Flags().String("mode", "keep", "Color mode of the result: keep, L, RGB or RGBA")
	adjustCmd.Flags().Int("quality", imaging.DefaultJPEGQuality, "JPEG quality (1-100)")
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	brightness, _ := cmd.Flags().GetFloat64("brightness")
	contrast, _ := cmd.Flags().GetFloat64("contrast")
	saturation, _ := cmd.Flags().GetFloat64("saturation")
	sharpness, _ := cmd.Flags().GetFloat64("sharpness")
	modeStr, _ := cmd.Flags().GetString("mode")
	quality, _ := cmd.Flags().GetInt("quality")

	mode, err := imaging.ParseMode(modeStr)
	if err != nil {
		return err
	}

	img, _, err := imaging.Open(args[0])
	if err != nil {
		return err
	}

	adj := imaging.Adjustments{
		Brightness: brightness,
		Contrast:   contrast,
		Saturation: saturation,
		Sharpness:  sharpness,
		Mode:       mode,
	}
	out := adj.Apply(img)
	if err := imaging.Save(out, args[1], quality); err != nil {
		return err
	}

	info := imaging.Describe(out)
	fmt.Fprintf(cmd.OutOrStdout(), "Adjusted %dx%d %s -> %s\n", info.Width, info.Height, info.Mode, args[1])
	return nil
}
