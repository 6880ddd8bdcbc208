package adapter

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sergev/pixy/config"
	"github.com/sergev/pixy/link"
)

var (
	camera     Camera
	configFile string
	cameraName string
	verbose    bool
)

// openBus opens the transport named by the selected camera profile
var openBus = func(s config.Settings) (link.Bus, error) {
	switch s.Link {
	case "i2c":
		return link.OpenI2C()
	case "serial":
		return link.OpenSerial(s.Port, s.Baud, s.ReadTimeout)
	default:
		return nil, fmt.Errorf("unsupported link %q", s.Link)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixy",
	Short: "A CLI program which works with Pixy cameras",
	Long:  "The pixy tool is a CLI program which reads detected blocks and controls Pixy cameras over I2C or UART.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()

		// Initialize configuration
		err := config.Initialize(configFile, cameraName)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to initialize config: %w", err))
		}

		camera, err = openCamera(currentSettings())
		if err != nil {
			cobra.CheckErr(err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if camera != nil {
			if err := camera.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close camera")
			}
			camera = nil
		}
	},
}

// setupLogging sends human-readable logs to stderr.
// Only warnings are shown unless --verbose is given.
func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// currentSettings collects the selected camera profile from the config globals
func currentSettings() config.Settings {
	return config.Settings{
		Name:        config.CameraName,
		Protocol:    config.Protocol,
		Link:        config.Link,
		Port:        config.Port,
		Baud:        config.Baud,
		Address:     config.Address,
		ReadTimeout: config.ReadTimeout,
		RetryBudget: config.RetryBudget,
		RetryDelay:  config.RetryDelay,
	}
}

// openCamera opens the transport and creates the camera on it
func openCamera(s config.Settings) (Camera, error) {
	bus, err := openBus(s)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s link for camera %q: %w", s.Link, s.Name, err)
	}
	log.Debug().
		Str("camera", s.Name).
		Str("protocol", s.Protocol).
		Str("link", s.Link).
		Msg("camera link open")

	cam, err := NewCamera(link.Trace(bus), s)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return cam, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.pixy)")
	rootCmd.PersistentFlags().StringVar(&cameraName, "camera", "", "camera profile from the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log bus traffic and retries")
}
