package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cosmicvar/internal/cosmic"
)

type varianceResponse struct {
	Survey   string  `json:"survey"`
	MeanZ    float64 `json:"mean_z"`
	DeltaZ   float64 `json:"delta_z"`
	Bin      string  `json:"bin"`
	ExactBin bool    `json:"exact_bin"`
	DeltaGG  float64 `json:"delta_gg"`
}

func (s *Server) handleVariance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	survey := cosmic.Survey(q.Get("survey"))
	if survey == "" {
		http.Error(w, "survey parameter required", http.StatusBadRequest)
		return
	}

	meanZ, err := queryFloat(q.Get("mean_z"), "mean_z")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deltaZ, err := queryFloat(q.Get("delta_z"), "delta_z")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		bin   cosmic.MassBin
		exact bool
		value float64
	)

	if binStr := q.Get("bin"); binStr != "" {
		bin, err = cosmic.ParseBin(binStr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		exact = true
		value, err = cosmic.ForBin(meanZ, deltaZ, bin, survey)
	} else {
		logMass, ferr := queryFloat(q.Get("log_mass"), "log_mass")
		if ferr != nil {
			http.Error(w, ferr.Error(), http.StatusBadRequest)
			return
		}
		bin, exact = cosmic.Resolve(logMass)
		if !exact {
			unmappedBinsTotal.Inc()
		}
		value, err = cosmic.ForMass(meanZ, deltaZ, logMass, survey)
	}
	if err != nil {
		s.writeEstimateError(w, err, string(survey))
		return
	}

	estimatesTotal.WithLabelValues(string(survey), "ok").Inc()
	writeJSON(w, varianceResponse{
		Survey:   string(survey),
		MeanZ:    meanZ,
		DeltaZ:   deltaZ,
		Bin:      bin.Label(),
		ExactBin: exact,
		DeltaGG:  value,
	})
}

func (s *Server) handleVarianceBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	survey := cosmic.Survey(q.Get("survey"))
	if survey == "" {
		http.Error(w, "survey parameter required", http.StatusBadRequest)
		return
	}

	meanZ, err := queryFloat(q.Get("mean_z"), "mean_z")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deltaZ, err := queryFloat(q.Get("delta_z"), "delta_z")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	massesParam := q.Get("masses")
	if massesParam == "" {
		http.Error(w, "masses parameter required (comma-separated log stellar masses)", http.StatusBadRequest)
		return
	}

	var masses []float64
	for _, part := range strings.Split(massesParam, ",") {
		m, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid mass %q", part), http.StatusBadRequest)
			return
		}
		masses = append(masses, m)
	}

	values, err := cosmic.ForMassArray(meanZ, deltaZ, masses, survey)
	if err != nil {
		s.writeEstimateError(w, err, string(survey))
		return
	}

	type estimate struct {
		LogMass float64 `json:"log_mass"`
		Bin     string  `json:"bin"`
		DeltaGG float64 `json:"delta_gg"`
	}

	estimates := make([]estimate, len(masses))
	for i, m := range masses {
		bin := cosmic.Bucket(m)
		if !bin.IsThreshold() {
			if _, exact := cosmic.Resolve(bin.Value()); !exact {
				unmappedBinsTotal.Inc()
			}
		}
		estimates[i] = estimate{
			LogMass: m,
			Bin:     bin.Label(),
			DeltaGG: values[i],
		}
	}

	estimatesTotal.WithLabelValues(string(survey), "ok").Add(float64(len(masses)))
	writeJSON(w, struct {
		Survey    string     `json:"survey"`
		MeanZ     float64    `json:"mean_z"`
		DeltaZ    float64    `json:"delta_z"`
		Estimates []estimate `json:"estimates"`
	}{
		Survey:    string(survey),
		MeanZ:     meanZ,
		DeltaZ:    deltaZ,
		Estimates: estimates,
	})
}

func (s *Server) handleSurveys(w http.ResponseWriter, r *http.Request) {
	type surveyResponse struct {
		Survey string  `json:"survey"`
		SigmaA float64 `json:"sigma_a"`
		SigmaB float64 `json:"sigma_b"`
		Beta   float64 `json:"beta"`
	}

	var response []surveyResponse
	for _, survey := range cosmic.Surveys() {
		fit, err := cosmic.FitForSurvey(survey)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		response = append(response, surveyResponse{
			Survey: string(survey),
			SigmaA: fit.SigmaA,
			SigmaB: fit.SigmaB,
			Beta:   fit.Beta,
		})
	}

	writeJSON(w, response)
}

func (s *Server) handleBins(w http.ResponseWriter, r *http.Request) {
	type binResponse struct {
		Bin       string  `json:"bin"`
		Threshold bool    `json:"threshold"`
		B0        float64 `json:"b0"`
		B1        float64 `json:"b1"`
		B2        float64 `json:"b2"`
	}

	var response []binResponse
	for _, bin := range cosmic.Bins() {
		fit, ok := cosmic.FitForBin(bin)
		if !ok {
			http.Error(w, fmt.Sprintf("bin %s missing from table", bin.Label()), http.StatusInternalServerError)
			return
		}
		response = append(response, binResponse{
			Bin:       bin.Label(),
			Threshold: bin.IsThreshold(),
			B0:        fit.B0,
			B1:        fit.B1,
			B2:        fit.B2,
		})
	}

	writeJSON(w, response)
}

func (s *Server) writeEstimateError(w http.ResponseWriter, err error, survey string) {
	estimatesTotal.WithLabelValues(survey, "error").Inc()

	var unknown *cosmic.UnknownSurveyError
	if errors.As(err, &unknown) || errors.Is(err, cosmic.ErrInvalidRedshift) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func queryFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s parameter required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
