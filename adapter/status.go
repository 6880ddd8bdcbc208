package adapter

import (
	"fmt"

	"github.com/sergev/pixy/config"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the camera",
	Long:  "Check the status of the camera selected in the configuration.",
	Run: func(cmd *cobra.Command, args []string) {
		if camera == nil {
			cobra.CheckErr(fmt.Errorf("camera not available"))
		}

		// Print status information
		camera.PrintStatus()

		fmt.Printf("\nConfiguration script: %s\n", config.FilePath)
		fmt.Printf("Camera: %s\n", config.CameraName)
		switch config.Link {
		case "serial":
			fmt.Printf("Link: serial %s, %d baud\n", config.Port, config.Baud)
		default:
			fmt.Printf("Link: %s\n", config.Link)
		}
		if config.Protocol == "pixy2" {
			fmt.Printf("Retry: budget %v, delay %v\n", config.RetryBudget, config.RetryDelay)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
