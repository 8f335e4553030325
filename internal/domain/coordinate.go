package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Integer-digit counts for the fixed-point coordinate encoding, tuned to the
// magnitude of metropolitan-France coordinates.
const (
	LatitudeDigits  = 2
	LongitudeDigits = 1
)

// ErrCoordinateFormat reports a coordinate string that does not follow the
// dataset's fixed-point encoding.
var ErrCoordinateFormat = errors.New("malformed coordinate")

// DecodeCoordinate converts a fixed-point encoded angle into decimal
// degrees. The substring before the first decimal point is split after
// intDigits leading characters; the remainder becomes the fractional part:
// DecodeCoordinate("4620100", 2) = 46.201. Digits after a real decimal
// point are noise and are discarded.
func DecodeCoordinate(angle string, intDigits int) (float64, error) {
	whole, _, _ := strings.Cut(angle, ".")
	if len(whole) < intDigits {
		return 0, fmt.Errorf("%w: %q has fewer than %d leading digits", ErrCoordinateFormat, angle, intDigits)
	}
	v, err := strconv.ParseFloat(whole[:intDigits]+"."+whole[intDigits:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrCoordinateFormat, angle)
	}
	return v, nil
}
