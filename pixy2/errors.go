package pixy2

import (
	"errors"
	"fmt"
)

// Result codes carried by result and error responses
const (
	CodeOK             = 0
	CodeError          = -1
	CodeBusy           = -2
	CodeChecksumError  = -3
	CodeTimeout        = -4
	CodeButtonOverride = -5
	CodeProgChanging   = -6
)

var (
	// ErrFailed matches every failure reported by the camera or by the
	// pixel query budget: both ResultError and ErrTimeout satisfy errors.Is(err, ErrFailed).
	ErrFailed = errors.New("camera request failed")

	// ErrTimeout is returned when the retry budget runs out.
	ErrTimeout = fmt.Errorf("%w: timed out waiting for camera", ErrFailed)

	// ErrNoSync is returned when no response sync word shows up.
	ErrNoSync = errors.New("no response sync from camera")

	// ErrNoData is returned when the transport keeps returning nothing.
	ErrNoData = errors.New("camera sent no data")
)

// ResultError is a negative result code reported by the camera
type ResultError struct {
	Code int
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("camera error: %s (%d)", resultName(e.Code), e.Code)
}

// Is makes every ResultError match ErrFailed.
func (e *ResultError) Is(target error) bool {
	return target == ErrFailed
}

// resultName returns a human-readable name for a result code
func resultName(code int) string {
	switch code {
	case CodeOK:
		return "ok"
	case CodeError:
		return "error"
	case CodeBusy:
		return "busy"
	case CodeChecksumError:
		return "checksum error"
	case CodeTimeout:
		return "timeout"
	case CodeButtonOverride:
		return "button override"
	case CodeProgChanging:
		return "program changing"
	default:
		return "unknown error"
	}
}
