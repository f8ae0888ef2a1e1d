package cosmic

// Survey identifies one of the five fields with published fit parameters
// (Moster et al. 2011, Table 3).
type Survey string

const (
	UDF    Survey = "UDF"
	GOODS  Survey = "GOODS"
	GEMS   Survey = "GEMS"
	EGS    Survey = "EGS"
	COSMOS Survey = "COSMOS"
)

// SurveyFit holds the dark-matter variance fit parameters for one survey
// field: sigma_dm = SigmaA / (meanZ^Beta + SigmaB).
type SurveyFit struct {
	SigmaA float64
	SigmaB float64
	Beta   float64
}

// surveyFits maps each recognized field to its Table 3 row.
var surveyFits = map[Survey]SurveyFit{
	UDF:    {SigmaA: 0.251, SigmaB: 0.364, Beta: 0.358},
	GOODS:  {SigmaA: 0.261, SigmaB: 0.854, Beta: 0.684},
	GEMS:   {SigmaA: 0.161, SigmaB: 0.520, Beta: 0.729},
	EGS:    {SigmaA: 0.128, SigmaB: 0.383, Beta: 0.673},
	COSMOS: {SigmaA: 0.069, SigmaB: 0.234, Beta: 0.834},
}

// Surveys returns the recognized survey fields in a fixed display order.
func Surveys() []Survey {
	return []Survey{UDF, GOODS, GEMS, EGS, COSMOS}
}

// FitForSurvey returns the dark-matter fit parameters for a survey field.
func FitForSurvey(survey Survey) (SurveyFit, error) {
	fit, ok := surveyFits[survey]
	if !ok {
		return SurveyFit{}, &UnknownSurveyError{Survey: survey}
	}
	return fit, nil
}

// BiasFit holds the galaxy bias fit parameters for one stellar mass bin:
// b = B0 * (meanZ + 1)^B1 + B2.
type BiasFit struct {
	B0 float64
	B1 float64
	B2 float64
}

// biasFits is Table 4: galaxy bias fit parameters keyed by stellar mass bin.
// Numeric bin centers sit on the .25/.75 quarter grid; threshold bins cover
// everything above a mass limit and are never chosen by nearest-bin search.
var biasFits = map[MassBin]BiasFit{
	CenterBin(8.75):  {B0: 0.062, B1: 2.59, B2: 1.025},
	CenterBin(9.25):  {B0: 0.074, B1: 2.58, B2: 1.039},
	CenterBin(9.75):  {B0: 0.042, B1: 3.17, B2: 1.147},
	CenterBin(10.25): {B0: 0.053, B1: 3.07, B2: 1.225},
	CenterBin(10.75): {B0: 0.069, B1: 3.19, B2: 1.269},
	CenterBin(11.25): {B0: 0.173, B1: 2.89, B2: 1.438},

	ThresholdBin(8.5):  {B0: 0.063, B1: 2.62, B2: 1.104},
	ThresholdBin(9.0):  {B0: 0.085, B1: 2.50, B2: 1.098},
	ThresholdBin(9.5):  {B0: 0.058, B1: 2.96, B2: 1.192},
	ThresholdBin(10.0): {B0: 0.072, B1: 2.90, B2: 1.257},
	ThresholdBin(10.5): {B0: 0.093, B1: 3.02, B2: 1.332},
	ThresholdBin(11.0): {B0: 0.185, B1: 2.86, B2: 1.448},
}

// binCenters is the numeric-bin view of the table, ascending. The nearest-bin
// fallback searches this slice only, so a threshold bin can never win.
var binCenters = []float64{8.75, 9.25, 9.75, 10.25, 10.75, 11.25}

// overflowBin is the bin used when bucketing lands above the last numeric
// center.
var overflowBin = ThresholdBin(11.0)

// Bins returns every tabulated bin, numeric centers first (ascending), then
// thresholds (ascending).
func Bins() []MassBin {
	bins := make([]MassBin, 0, len(biasFits))
	for _, c := range binCenters {
		bins = append(bins, CenterBin(c))
	}
	for _, t := range []float64{8.5, 9.0, 9.5, 10.0, 10.5, 11.0} {
		bins = append(bins, ThresholdBin(t))
	}
	return bins
}

// FitForBin returns the bias fit parameters for a tabulated bin.
func FitForBin(bin MassBin) (BiasFit, bool) {
	fit, ok := biasFits[bin]
	return fit, ok
}
