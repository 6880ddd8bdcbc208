package adapter

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sergev/pixy/blob"
	"github.com/spf13/cobra"
)

var (
	blocksSignature int
	blocksColorCode string
	blocksWatch     bool
	blocksInterval  time.Duration
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print detected blocks",
	Long: `Print the blocks detected in the most recent frame.
With --signature, only blocks of that signature (1..7) are shown.
With --color-code (e.g. cc35), the largest block of that color code is shown.
With --watch, the camera is polled until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if camera == nil {
			cobra.CheckErr(fmt.Errorf("camera not available"))
		}
		if blocksColorCode != "" {
			cobra.CheckErr(printColorCode(camera, blocksColorCode))
			return
		}
		if !blocksWatch {
			cobra.CheckErr(printBlocks(camera, blocksSignature))
			return
		}

		if blocksInterval <= 0 {
			cobra.CheckErr(fmt.Errorf("invalid --interval %v: must be positive", blocksInterval))
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		cobra.CheckErr(watchBlocks(ctx, camera, blocksSignature, blocksInterval))
	},
}

// readBlocks returns all blocks, or the blocks of one signature when sig is not zero
func readBlocks(cam Camera, sig int) (blob.List, error) {
	if sig == 0 {
		return cam.Blocks()
	}
	source, ok := cam.(SignatureSource)
	if !ok {
		return blob.List{}, fmt.Errorf("camera cannot filter by signature")
	}
	return source.SignatureBlocks(sig)
}

func printBlocks(cam Camera, sig int) error {
	list, err := readBlocks(cam, sig)
	if err != nil {
		return fmt.Errorf("failed to read blocks: %w", err)
	}
	detected := list.Detected()
	if len(detected) == 0 {
		fmt.Printf("No blocks detected\n")
		return nil
	}
	fmt.Printf("Detected %d block(s):\n", len(detected))
	for i, block := range detected {
		fmt.Printf("  block %d: %s\n", i, block)
	}
	return nil
}

func printColorCode(cam Camera, text string) error {
	cc, err := blob.ParseSignature(text)
	if err != nil {
		return err
	}
	source, ok := cam.(ColorCodeSource)
	if !ok {
		return fmt.Errorf("camera cannot query color codes")
	}
	block, err := source.ColorCodeBlock(cc)
	if err != nil {
		return fmt.Errorf("failed to read color code %s: %w", cc, err)
	}
	if block.IsEmpty() {
		fmt.Printf("Color code %s not detected\n", cc)
		return nil
	}
	fmt.Printf("%s\n", block)
	return nil
}

// watchBlocks polls the camera every interval until ctx is done
func watchBlocks(ctx context.Context, cam Camera, sig int, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %v: must be positive", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for frame := 1; ; frame++ {
		fmt.Printf("frame %d\n", frame)
		if err := printBlocks(cam, sig); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func init() {
	blocksCmd.Flags().IntVarP(&blocksSignature, "signature", "s", 0, "show only blocks of this signature (1..7)")
	blocksCmd.Flags().StringVar(&blocksColorCode, "color-code", "", "show the largest block of this color code, e.g. cc35")
	blocksCmd.Flags().BoolVarP(&blocksWatch, "watch", "w", false, "poll the camera until interrupted")
	blocksCmd.Flags().DurationVar(&blocksInterval, "interval", 50*time.Millisecond, "polling interval with --watch")
	rootCmd.AddCommand(blocksCmd)
}
