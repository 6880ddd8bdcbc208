package adapter

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sergev/pixy/link"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports and attached cameras",
	Long:  "List serial ports usable for a UART link, and Pixy cameras attached over USB.",
	Args:  cobra.NoArgs,
	// No camera is opened for this command
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := link.Ports()
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(ports) == 0 {
			fmt.Printf("No serial ports found\n")
		}
		for _, p := range ports {
			if p.IsUSB {
				fmt.Printf("%s: USB %04x:%04x %s %s\n", p.Name, p.VendorID, p.ProductID, p.Product, p.SerialNumber)
			} else {
				fmt.Printf("%s\n", p.Name)
			}
		}

		devices, err := link.FindUSB()
		if err != nil {
			log.Warn().Err(err).Msg("USB scan failed")
			return
		}
		for _, d := range devices {
			fmt.Printf("\nPixy camera on USB bus %d address %d\n", d.Bus, d.Address)
			fmt.Printf("Product: %s %s, release %s\n", d.Manufacturer, d.Product, d.Version)
			if d.SerialNumber != "" {
				fmt.Printf("Serial Number: %s\n", d.SerialNumber)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
