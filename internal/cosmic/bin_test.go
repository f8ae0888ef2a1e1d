package cosmic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket(t *testing.T) {
	t.Run("tabulated centers pass through unchanged", func(t *testing.T) {
		for _, c := range binCenters {
			got := Bucket(c)
			require.False(t, got.IsThreshold(), "center %g", c)
			assert.Equal(t, c, got.Value(), "center %g", c)
		}
	})

	t.Run("half-integers nudge down a quarter step", func(t *testing.T) {
		cases := map[float64]float64{
			9.0:  8.75,
			10.0: 9.75,
			10.5: 10.25,
			11.0: 10.75,
			11.5: 11.25,
		}
		for mass, want := range cases {
			got := Bucket(mass)
			require.False(t, got.IsThreshold(), "mass %g", mass)
			assert.Equal(t, want, got.Value(), "mass %g", mass)
		}
	})

	t.Run("arbitrary masses snap onto the quarter grid", func(t *testing.T) {
		cases := map[float64]float64{
			9.1:  9.25, // floors to 9.0, shifted up off the half-integer
			9.3:  9.25, // floors straight onto a center
			9.4:  9.25,
			9.6:  9.75, // floors to 9.5, shifted up
			10.9: 10.75,
			11.3: 11.25,
			8.2:  8.25, // below the table: still grid-snapped, lookup falls back later
		}
		for mass, want := range cases {
			got := Bucket(mass)
			require.False(t, got.IsThreshold(), "mass %g", mass)
			assert.Equal(t, want, got.Value(), "mass %g", mass)
		}
	})

	t.Run("masses above the last center spill into the threshold bin", func(t *testing.T) {
		for _, mass := range []float64{11.6, 11.9, 12.25, 14.0} {
			got := Bucket(mass)
			require.True(t, got.IsThreshold(), "mass %g", mass)
			assert.Equal(t, ">11.0", got.Label(), "mass %g", mass)
		}
	})

	t.Run("half-integer just below the overflow boundary stays on the last center", func(t *testing.T) {
		// The double closest to 11.505 from accumulating 0.001 steps.
		// Rounding 11.254999... to two decimals must give 11.25, not 11.26,
		// so the mass lands on the 11.25 center instead of spilling into
		// the threshold bin.
		got := Bucket(11.504999999999999)
		require.False(t, got.IsThreshold())
		assert.Equal(t, 11.25, got.Value())
	})

	t.Run("overflow resolves to the published threshold parameters", func(t *testing.T) {
		fit, ok := FitForBin(Bucket(11.9))
		require.True(t, ok)
		assert.Equal(t, BiasFit{B0: 0.185, B1: 2.86, B2: 1.448}, fit)
	})
}

func TestRoundTo(t *testing.T) {
	// Decimal rounding must be single-step: the binary scale-and-round
	// shortcut turns 11.254999... into 11.26.
	assert.Equal(t, 11.25, roundTo(11.254999999999999, 2))
	assert.Equal(t, 11.5, roundTo(11.504999999999999, 1))
	assert.Equal(t, 0.2, roundTo(0.19999999999999998, 2))
	assert.Equal(t, 9.25, roundTo(9.25, 2))
}

func TestMassBinLabel(t *testing.T) {
	assert.Equal(t, "10.25", CenterBin(10.25).Label())
	assert.Equal(t, "8.75", CenterBin(8.75).Label())
	assert.Equal(t, ">11.0", ThresholdBin(11.0).Label())
	assert.Equal(t, ">9.5", ThresholdBin(9.5).Label())
}

func TestParseBin(t *testing.T) {
	t.Run("round trips every tabulated bin", func(t *testing.T) {
		for _, bin := range Bins() {
			parsed, err := ParseBin(bin.Label())
			require.NoError(t, err, "bin %s", bin.Label())
			assert.Equal(t, bin, parsed)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseBin("not-a-bin")
		assert.Error(t, err)

		_, err = ParseBin(">x")
		assert.Error(t, err)
	})
}

func TestTables(t *testing.T) {
	t.Run("every survey has exactly one fit row", func(t *testing.T) {
		assert.Len(t, surveyFits, len(Surveys()))
		for _, s := range Surveys() {
			_, err := FitForSurvey(s)
			assert.NoError(t, err)
		}
	})

	t.Run("every bin center has a bias row", func(t *testing.T) {
		for _, c := range binCenters {
			_, ok := FitForBin(CenterBin(c))
			assert.True(t, ok, "center %g", c)
		}
	})

	t.Run("Bins lists all twelve table rows", func(t *testing.T) {
		bins := Bins()
		assert.Len(t, bins, len(biasFits))
		for _, bin := range bins {
			_, ok := FitForBin(bin)
			assert.True(t, ok, "bin %s", bin.Label())
		}
	})
}
