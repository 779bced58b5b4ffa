package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseByte reads a register value written as decimal, 0x hex or 0b
// binary.
func ParseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, errors.Errorf("'%s' is not a byte value", s)
	}
	return uint8(v), nil
}

// S8HalfDBToFloat converts a signed 8-bit register in 0.5 dB steps.
func S8HalfDBToFloat(raw uint8) float64 {
	return float64(int8(raw)) / 2.0
}

// FloatToS8HalfDB is the inverse of S8HalfDBToFloat, rounded to the
// nearest step and clamped to [lo, hi].
func FloatToS8HalfDB(db, lo, hi float64) uint8 {
	db = math.Max(lo, math.Min(hi, db))
	return uint8(int8(math.Round(db * 2)))
}

// DBToLinear returns the amplitude ratio of a gain in dB.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB returns the gain in dB of an amplitude ratio.
func LinearToDB(lin float64) float64 {
	if lin <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(lin)
}

func DBString(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%+.1f dB", db)
}
