package cosmic

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRedshift is returned when the mean redshift or the redshift bin
// width is not positive. The fit formulas divide by both, so neither value
// has a defined result at or below zero.
var ErrInvalidRedshift = errors.New("mean redshift and redshift bin width must be positive")

// UnknownSurveyError is returned when a survey field has no tabulated fit
// parameters.
type UnknownSurveyError struct {
	Survey Survey
}

func (e *UnknownSurveyError) Error() string {
	return fmt.Sprintf("unknown survey field %q (tabulated fields: UDF, GOODS, GEMS, EGS, COSMOS)", string(e.Survey))
}

// ForMass computes the root cosmic variance delta_gg for galaxies at the
// given log stellar mass. If logMass is not an exact bin center it is snapped
// to the nearest numeric center (lower center wins on a tie) and a warning is
// logged; threshold bins are never chosen this way.
func ForMass(meanZ, deltaZ, logMass float64, survey Survey) (float64, error) {
	bin, exact := Resolve(logMass)
	if !exact {
		logrus.Warnf("log stellar mass %g is not a tabulated bin center, snapping to %s", logMass, bin.Label())
	}
	return ForBin(meanZ, deltaZ, bin, survey)
}

// Resolve maps a log stellar mass to the bias table bin ForMass would use:
// the exact numeric bin if logMass is a tabulated center, otherwise the
// nearest center. The second result reports whether the match was exact.
func Resolve(logMass float64) (MassBin, bool) {
	bin := CenterBin(logMass)
	if _, ok := biasFits[bin]; ok {
		return bin, true
	}
	return nearestCenter(logMass), false
}

// ForBin computes the root cosmic variance for an exact Table 4 bin, numeric
// or threshold. No snapping is applied; an untabulated bin is an error.
func ForBin(meanZ, deltaZ float64, bin MassBin, survey Survey) (float64, error) {
	if meanZ <= 0 || deltaZ <= 0 {
		return 0, errors.Wrapf(ErrInvalidRedshift, "mean_z=%g delta_z=%g", meanZ, deltaZ)
	}

	fit, err := FitForSurvey(survey)
	if err != nil {
		return 0, err
	}

	bias, ok := biasFits[bin]
	if !ok {
		return 0, errors.Errorf("mass bin %s is not tabulated", bin.Label())
	}

	// Equation (10): dark matter root cosmic variance at delta_z = 0.2.
	sigmaDM := fit.SigmaA / (math.Pow(meanZ, fit.Beta) + fit.SigmaB)

	// Equation (13): galaxy bias for this mass bin at this redshift.
	b := bias.B0*math.Pow(meanZ+1, bias.B1) + bias.B2

	// Scale the delta_z = 0.2 variance to the requested bin width.
	return b * sigmaDM * math.Sqrt(0.2/deltaZ), nil
}

// ForMassArray buckets each mass onto the quarter grid and computes its root
// cosmic variance. The result has the same length and order as masses.
func ForMassArray(meanZ, deltaZ float64, masses []float64, survey Survey) ([]float64, error) {
	if meanZ <= 0 || deltaZ <= 0 {
		return nil, errors.Wrapf(ErrInvalidRedshift, "mean_z=%g delta_z=%g", meanZ, deltaZ)
	}

	out := make([]float64, len(masses))
	for i, mass := range masses {
		bin := Bucket(mass)

		var v float64
		var err error
		if bin.IsThreshold() {
			v, err = ForBin(meanZ, deltaZ, bin, survey)
		} else {
			v, err = ForMass(meanZ, deltaZ, bin.Value(), survey)
		}
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// nearestCenter returns the numeric bin center minimizing
// |center - logMass + 0.001|. The asymmetric epsilon deliberately breaks
// exact ties toward the lower center and is part of the published recipe's
// behavior.
func nearestCenter(logMass float64) MassBin {
	best := binCenters[0]
	bestDist := math.Abs(best - logMass + 0.001)
	for _, c := range binCenters[1:] {
		if d := math.Abs(c - logMass + 0.001); d < bestDist {
			best, bestDist = c, d
		}
	}
	return CenterBin(best)
}
