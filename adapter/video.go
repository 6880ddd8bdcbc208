package adapter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sergev/pixy/config"
	"github.com/spf13/cobra"
)

var rgbSaturate bool

var rgbCmd = &cobra.Command{
	Use:   "rgb X Y",
	Short: "Print the color of a pixel",
	Long: `Print the average color of the 5x5 area centered at pixel (X, Y).
With --saturate, channels are scaled so the brightest one is 255.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		sensor, ok := camera.(ColorSensor)
		if !ok {
			cobra.CheckErr(fmt.Errorf("camera %q cannot report pixel colors", config.CameraName))
		}
		x, err := strconv.Atoi(args[0])
		cobra.CheckErr(err)
		y, err := strconv.Atoi(args[1])
		cobra.CheckErr(err)

		ctx, cancel := context.WithTimeout(context.Background(), config.RetryBudget+time.Second)
		defer cancel()

		rgb, err := sensor.RGB(ctx, x, y, rgbSaturate)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to read pixel color: %w", err))
		}
		fmt.Printf("Pixel (%d, %d): %s #%06x\n", x, y, rgb, rgb.Packed())
	},
}

var lampCmd = &cobra.Command{
	Use:   "lamp UPPER LOWER",
	Short: "Turn the camera lamps on or off",
	Long: `Turn the white upper lamps and the lower RGB LED lamp on or off.
Each argument is on, off, true, false, 1 or 0.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lights := lightController()
		upper, err := parseOnOff(args[0])
		cobra.CheckErr(err)
		lower, err := parseOnOff(args[1])
		cobra.CheckErr(err)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := lights.SetLamp(ctx, upper, lower); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to set lamps: %w", err))
		}
	},
}

var ledCmd = &cobra.Command{
	Use:   "led R G B",
	Short: "Set the color of the RGB LED",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		lights := lightController()
		var rgb [3]uint8
		for i, arg := range args {
			v, err := strconv.ParseUint(arg, 0, 8)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("invalid color component %q: must be 0..255", arg))
			}
			rgb[i] = uint8(v)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := lights.SetLED(ctx, rgb[0], rgb[1], rgb[2]); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to set LED: %w", err))
		}
	},
}

func lightController() LightController {
	lights, ok := camera.(LightController)
	if !ok {
		cobra.CheckErr(fmt.Errorf("camera %q has no controllable lights", config.CameraName))
	}
	return lights
}

// parseOnOff accepts on/off in addition to the strconv boolean forms
func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid lamp state %q: must be on or off", s)
	}
	return v, nil
}

func init() {
	rgbCmd.Flags().BoolVar(&rgbSaturate, "saturate", false, "scale channels so the brightest one is 255")
	rootCmd.AddCommand(rgbCmd)
	rootCmd.AddCommand(lampCmd)
	rootCmd.AddCommand(ledCmd)
}
