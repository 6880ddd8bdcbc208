package pixy2

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sergev/pixy/blob"
)

// RGB returns the average color of the 5x5 area centered at (x, y).
// With saturate set, the camera scales the channels so the brightest one is 255.
//
// While the camera reports "program changing" the request is repeated after
// the policy delay, within the policy budget measured from entry; running out
// of budget returns ErrTimeout. Any other error response fails at once with
// *ResultError. Both match ErrFailed.
func (c *Client) RGB(ctx context.Context, x, y int, saturate bool) (blob.RGB, error) {
	payload := []byte{
		byte(x), byte(x >> 8),
		byte(y), byte(y >> 8),
		boolByte(saturate),
	}

	policy := c.engine.conf.retry
	start := policy.now()
	for attempt := 1; ; attempt++ {
		pkt, err := c.engine.Exchange(ctx, TypeRequestGetRGB, payload)
		if err != nil {
			return blob.RGB{}, fmt.Errorf("failed to query color at (%d, %d): %w", x, y, err)
		}

		switch {
		case pkt.Type == TypeResponseResult && len(pkt.Payload) == 4:
			// bytes 0-2: red, green, blue (unsigned); byte 3 unused
			p := pkt.Payload
			return blob.NewRGB(int(p[0]), int(p[1]), int(p[2])), nil

		case pkt.isError(CodeProgChanging):
			log.Debug().
				Int("attempt", attempt).
				Dur("elapsed", policy.now().Sub(start)).
				Msg("camera is changing program, retrying color query")

		default:
			return blob.RGB{}, fmt.Errorf("failed to query color at (%d, %d): %w", x, y, pkt.err())
		}

		if policy.exhausted(start, attempt) {
			return blob.RGB{}, fmt.Errorf("failed to query color at (%d, %d) after %d attempts: %w", x, y, attempt, ErrTimeout)
		}
		if err := policy.sleep(ctx); err != nil {
			return blob.RGB{}, err
		}
	}
}
