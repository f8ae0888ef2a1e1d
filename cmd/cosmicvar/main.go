package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cosmicvar/internal/cosmic"
	"cosmicvar/internal/web"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "cosmicvar",
		Short: "Cosmic variance calculator (Moster et al. 2011 cookbook)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(tableCmd())
	rootCmd.AddCommand(surveysCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func computeCmd() *cobra.Command {
	var surveyStr, binLabel string
	var meanZ, deltaZ, mass float64

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute root cosmic variance for a single stellar mass",
		RunE: func(cmd *cobra.Command, args []string) error {
			survey := cosmic.Survey(surveyStr)

			var (
				bin   cosmic.MassBin
				exact bool
				value float64
				err   error
			)

			if binLabel != "" {
				bin, err = cosmic.ParseBin(binLabel)
				if err != nil {
					return err
				}
				exact = true
				value, err = cosmic.ForBin(meanZ, deltaZ, bin, survey)
			} else {
				if !cmd.Flags().Changed("mass") {
					return fmt.Errorf("either --mass or --bin is required")
				}
				bin, exact = cosmic.Resolve(mass)
				value, err = cosmic.ForMass(meanZ, deltaZ, mass, survey)
			}
			if err != nil {
				return err
			}

			dim := color.New(color.Faint)
			_, _ = dim.Printf("Survey:  %s\n", survey)
			_, _ = dim.Printf("Mean z:  %g (bin width %g)\n", meanZ, deltaZ)
			if exact {
				_, _ = dim.Printf("Bin:     %s\n", bin.Label())
			} else {
				_, _ = dim.Printf("Bin:     %s (snapped from %g)\n", bin.Label(), mass)
			}

			color.Green("delta_gg = %.6f", value)
			return nil
		},
	}

	cmd.Flags().StringVar(&surveyStr, "survey", "COSMOS", "survey field (UDF, GOODS, GEMS, EGS, COSMOS)")
	cmd.Flags().Float64Var(&meanZ, "mean-z", 1.0, "mean redshift of the bin")
	cmd.Flags().Float64Var(&deltaZ, "delta-z", 0.2, "redshift bin width")
	cmd.Flags().Float64Var(&mass, "mass", 0, "log10 stellar mass")
	cmd.Flags().StringVar(&binLabel, "bin", "", "explicit mass bin label (e.g. 10.25 or >10.5)")

	return cmd
}

func tableCmd() *cobra.Command {
	var surveyStr, massesStr string
	var meanZ, deltaZ float64

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Compute variances for a list of stellar masses",
		RunE: func(cmd *cobra.Command, args []string) error {
			survey := cosmic.Survey(surveyStr)

			var masses []float64
			if massesStr == "" {
				for _, bin := range cosmic.Bins() {
					if !bin.IsThreshold() {
						masses = append(masses, bin.Value())
					}
				}
			} else {
				var err error
				masses, err = parseMasses(massesStr)
				if err != nil {
					return err
				}
			}

			values, err := cosmic.ForMassArray(meanZ, deltaZ, masses, survey)
			if err != nil {
				return err
			}

			cyan := color.New(color.FgCyan)
			dim := color.New(color.Faint)

			_, _ = cyan.Printf("Survey %s, mean z %g, bin width %g\n", survey, meanZ, deltaZ)
			_, _ = cyan.Printf("%-10s %-8s %12s\n", "log(M*)", "Bin", "delta_gg")
			_, _ = dim.Println(strings.Repeat("-", 32))

			for i, mass := range masses {
				fmt.Printf("%-10g %-8s %12.6f\n", mass, cosmic.Bucket(mass).Label(), values[i])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&surveyStr, "survey", "COSMOS", "survey field (UDF, GOODS, GEMS, EGS, COSMOS)")
	cmd.Flags().Float64Var(&meanZ, "mean-z", 1.0, "mean redshift of the bin")
	cmd.Flags().Float64Var(&deltaZ, "delta-z", 0.2, "redshift bin width")
	cmd.Flags().StringVar(&massesStr, "masses", "", "comma-separated log10 stellar masses (default: the tabulated bin centers)")

	return cmd
}

func surveysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surveys",
		Short: "List the tabulated survey fit parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cyan := color.New(color.FgCyan)
			dim := color.New(color.Faint)

			_, _ = cyan.Printf("%-8s %8s %8s %8s\n", "Survey", "sigma_a", "sigma_b", "beta")
			_, _ = dim.Println(strings.Repeat("-", 36))

			for _, survey := range cosmic.Surveys() {
				fit, err := cosmic.FitForSurvey(survey)
				if err != nil {
					return err
				}
				fmt.Printf("%-8s %8.3f %8.3f %8.3f\n", survey, fit.SigmaA, fit.SigmaB, fit.Beta)
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return web.NewServer(addr).Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func parseMasses(s string) ([]float64, error) {
	var masses []float64
	for _, part := range strings.Split(s, ",") {
		m, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mass %q", part)
		}
		masses = append(masses, m)
	}
	return masses, nil
}
