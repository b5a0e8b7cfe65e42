package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/colorimetry-mcp/internal/colorspace"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <#rrggbb | r g b>",
	Short: "Convert an RGB color to other color models",
	Example: `  colorimetry-mcp convert '#8b4513'
  colorimetry-mcp convert 139 69 19 --model LAB`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("accepts a hex color or three channel values, received %d args", len(args))
		}
		return nil
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("model", "m", "", "Target color model (default all)")
	addFormatFlag(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

type convertOutput struct {
	RGB         colorspace.RGB          `json:"rgb"`
	Hex         string                  `json:"hex"`
	Conversions []colorspace.Conversion `json:"conversions"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	modelName, _ := cmd.Flags().GetString("model")
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}

	c, err := parseColorArgs(args)
	if err != nil {
		return err
	}

	out := convertOutput{RGB: c, Hex: c.Hex()}
	if modelName == "" {
		out.Conversions = colorspace.ConvertAll(c)
	} else {
		m, err := colorspace.ParseModel(modelName)
		if err != nil {
			return err
		}
		v, err := colorspace.Convert(c, m)
		if err != nil {
			return err
		}
		out.Conversions = []colorspace.Conversion{{Model: m, Value: v, Display: colorspace.Format(v)}}
	}

	if asJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}
	printConversions(cmd.OutOrStdout(), out.Hex, out.Conversions)
	return nil
}

func parseColorArgs(args []string) (colorspace.RGB, error) {
	if len(args) == 1 {
		return colorspace.ParseHex(args[0])
	}

	var ch [3]uint8
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return colorspace.RGB{}, fmt.Errorf("channel %q is not a value in 0-255", a)
		}
		ch[i] = uint8(v)
	}
	return colorspace.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func printConversions(w io.Writer, hex string, conv []colorspace.Conversion) {
	fmt.Fprintf(w, "Color: %s\n", hex)
	for _, c := range conv {
		if c.Error != "" {
			fmt.Fprintf(w, "  %s: %s\n", c.Model, c.Error)
			continue
		}
		fmt.Fprintf(w, "  %s\n", c.Display)
	}
}
