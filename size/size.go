package size

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	KB uint64 = 1024
	MB        = 1024 * KB
	GB        = 1024 * MB
)

type Unit struct {
	Name       string
	Aliases    []string
	Multiplier uint64
}

var units = []Unit{
	{Name: "b", Aliases: []string{""}, Multiplier: 1},
	{Name: "kb", Aliases: []string{"k"}, Multiplier: KB},
	{Name: "mb", Aliases: []string{"m"}, Multiplier: MB},
	{Name: "gb", Aliases: []string{"g"}, Multiplier: GB},
}

// Units returns the recognized unit suffixes in ascending order.
func Units() []Unit {
	u := make([]Unit, len(units))
	copy(u, units)
	return u
}

// Parse converts a size such as "2048", "512mb" or "1 G" into a byte count.
// Unit suffixes are case-insensitive and may be surrounded by whitespace.
// The unit multiplication saturates at math.MaxUint64 instead of wrapping.
func Parse(s string) (uint64, error) {
	normalized := cases.Lower(language.Und).String(s)
	if normalized == "" {
		return 0, &EmptyError{}
	}

	split := strings.IndexFunc(normalized, func(r rune) bool { return !isDigit(r) })
	if split == -1 {
		n, err := strconv.ParseUint(normalized, 10, 64)
		if err != nil {
			return 0, &InvalidNumberError{Input: s, Number: normalized, Err: err}
		}
		return n, nil
	}

	numStr, unitStr := normalized[:split], strings.TrimSpace(normalized[split:])
	if numStr == "" {
		return 0, &InvalidNumberError{Input: s, Number: numStr}
	}

	n, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return 0, &InvalidNumberError{Input: s, Number: numStr, Err: err}
		}
		n = math.MaxUint64
	}

	mul, ok := multiplier(unitStr)
	if !ok {
		return 0, &UnknownUnitError{Input: s, Unit: unitStr}
	}

	return saturatingMul(n, mul), nil
}

// Human renders n the way log fields and messages show it, e.g. "512 MiB".
func Human(n uint64) string {
	return humanize.IBytes(n)
}

func multiplier(unit string) (uint64, bool) {
	for _, u := range units {
		if unit == u.Name {
			return u.Multiplier, true
		}
		for _, alias := range u.Aliases {
			if unit == alias {
				return u.Multiplier, true
			}
		}
	}
	return 0, false
}

func saturatingMul(a, b uint64) uint64 {
	if a != 0 && b > math.MaxUint64/a {
		return math.MaxUint64
	}
	return a * b
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
