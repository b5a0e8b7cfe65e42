package main

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/colorimetry-mcp/internal/colorspace"
	"github.com/ironsheep/colorimetry-mcp/internal/imaging"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick <image> <x> <y>",
	Short: "Map a click on a letterboxed display to a pixel and convert its color",
	Long: `pick letterboxes the image into a canvas of the given size, maps the
canvas point (x, y) back to a source pixel and prints that pixel in every
color model. Without a canvas size the point is taken as a source pixel.`,
	Args: cobra.ExactArgs(3),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().Int("canvas-width", 0, "Display canvas width")
	pickCmd.Flags().Int("canvas-height", 0, "Display canvas height")
	addFormatFlag(pickCmd)
	rootCmd.AddCommand(pickCmd)
}

type pickOutput struct {
	Geometry    *imaging.RenderGeometry `json:"geometry,omitempty"`
	Selected    bool                    `json:"selected"`
	Pixel       *imaging.PixelSample    `json:"pixel,omitempty"`
	Conversions []colorspace.Conversion `json:"conversions,omitempty"`
}

func runPick(cmd *cobra.Command, args []string) error {
	cw, _ := cmd.Flags().GetInt("canvas-width")
	ch, _ := cmd.Flags().GetInt("canvas-height")
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}

	x, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[1], err)
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[2], err)
	}

	img, _, err := imaging.Open(args[0])
	if err != nil {
		return err
	}

	var out pickOutput
	if cw != 0 || ch != 0 {
		b := img.Bounds()
		g, err := imaging.ComputeGeometry(b.Dx(), b.Dy(), cw, ch)
		if err != nil {
			return err
		}
		out.Geometry = &g
		out.Pixel, out.Selected, err = imaging.Inspect(img, g, x, y)
		if err != nil {
			return err
		}
	} else {
		if out.Pixel, err = imaging.SampleColor(img, x, y); err != nil {
			return err
		}
		out.Selected = true
	}
	if out.Selected {
		out.Conversions = colorspace.ConvertAll(out.Pixel.RGB)
	}

	w := cmd.OutOrStdout()
	if asJSON {
		return printJSON(w, out)
	}
	if out.Geometry != nil {
		g := out.Geometry
		fmt.Fprintf(w, "Canvas %dx%d: image scaled to %dx%d at (%d,%d)\n",
			g.CanvasWidth, g.CanvasHeight, g.ScaledWidth, g.ScaledHeight, g.OffsetX, g.OffsetY)
	}
	if !out.Selected {
		fmt.Fprintf(w, "(%d,%d) is outside the image\n", x, y)
		return nil
	}
	fmt.Fprintf(w, "Pixel (%d,%d) alpha %d\n", out.Pixel.X, out.Pixel.Y, out.Pixel.Alpha)
	printConversions(w, out.Pixel.Hex, out.Conversions)
	return nil
}
