package cosmic

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MassBin is a stellar mass bin key in the bias table: either a numeric bin
// center on the .25/.75 quarter grid, or a ">X" threshold covering all masses
// above a limit.
type MassBin struct {
	value     float64
	threshold bool
}

// CenterBin returns the numeric bin centered on the given log stellar mass.
func CenterBin(logMass float64) MassBin {
	return MassBin{value: logMass}
}

// ThresholdBin returns the threshold bin for masses above the given limit.
func ThresholdBin(logMass float64) MassBin {
	return MassBin{value: logMass, threshold: true}
}

// IsThreshold reports whether the bin is a threshold rather than a center.
func (b MassBin) IsThreshold() bool { return b.threshold }

// Value returns the bin center, or the lower mass limit for a threshold bin.
func (b MassBin) Value() float64 { return b.value }

// Label renders the bin the way Table 4 writes it: "10.25" for a center,
// ">10.5" for a threshold.
func (b MassBin) Label() string {
	if b.threshold {
		return ">" + strconv.FormatFloat(b.value, 'f', 1, 64)
	}
	return strconv.FormatFloat(b.value, 'f', 2, 64)
}

// ParseBin parses a Table 4 bin label, numeric ("10.25") or threshold
// (">10.5").
func ParseBin(s string) (MassBin, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, ">"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return MassBin{}, errors.Wrapf(err, "invalid threshold bin %q", s)
		}
		return ThresholdBin(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return MassBin{}, errors.Wrapf(err, "invalid mass bin %q", s)
	}
	return CenterBin(v), nil
}

// Bucket snaps an arbitrary log stellar mass onto the quarter grid the bias
// table is keyed on. Masses that round to an exact multiple of 0.5 at one
// decimal are nudged down a quarter step; everything else is floored to the
// quarter grid and shifted up a quarter step if that floor landed on a
// half-integer. Anything above the last numeric center spills into the
// ">11.0" threshold bin.
//
// The 1e-4 comparisons absorb binary representation error in the decimal
// arithmetic and must stay as written.
func Bucket(mass float64) MassBin {
	m := mass
	mod := roundTo(math.Mod(roundTo(m, 1), 0.5), 2)
	if mod <= 0.0001 {
		m = roundTo(m-0.25, 2)
	} else {
		rounded := math.Floor(m/0.25) * 0.25
		if roundTo(math.Mod(roundTo(rounded, 2), 0.5), 2) <= 0.0001 {
			rounded += 0.25
		}
		m = rounded
	}

	if m > 11.25 {
		return overflowBin
	}
	return CenterBin(m)
}

// roundTo rounds x to the given number of decimal digits, correctly rounded
// in decimal. Scaling by a power of ten and rounding in binary can round
// twice (11.254999... scales to exactly 1125.5 and lands on 11.26), which
// shifts masses across the overflow boundary; formatting picks the right
// decimal directly.
func roundTo(x float64, digits int) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', digits, 64), 64)
	return v
}
