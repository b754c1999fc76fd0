package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gobayes/adapters/excel"
	"gobayes/adapters/mcmc"
	"gobayes/adapters/ols"
	"gobayes/adapters/plot"
	"gobayes/adapters/sim"
	"gobayes/app"
	"gobayes/domain/regress"
	"gobayes/domain/table"
	"gobayes/internal"
	"gobayes/internal/config"
	"gobayes/internal/report"
	"gobayes/internal/rng"
	"gobayes/ports"
	"gobayes/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobayes-cli",
		Short: "Compare frequentist and Bayesian linear regression on simulated survey data",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newSimulateCmd(),
		newPlotCmd(),
		newExportCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type analysisFlags struct {
	seed          int64
	rows          int
	chains        int
	iterations    int
	priorFamily   string
	priorLocation float64
	priorScale    float64
	priorDF       float64
	credibleMass  float64
	ropeHalfWidth float64
	timeoutSec    int
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.seed, "seed", 123, "Random seed for deterministic simulation and sampling")
	cmd.Flags().IntVar(&f.rows, "rows", 20, "Number of observations to simulate")
	cmd.Flags().IntVar(&f.chains, "chains", 4, "Number of MCMC chains")
	cmd.Flags().IntVar(&f.iterations, "iterations", 2000, "MCMC iterations per chain (first half is warmup)")
	cmd.Flags().StringVar(&f.priorFamily, "prior", "gaussian", "Coefficient prior family (gaussian|student_t|cauchy)")
	cmd.Flags().Float64Var(&f.priorLocation, "prior-location", 0, "Prior location")
	cmd.Flags().Float64Var(&f.priorScale, "prior-scale", 10, "Prior scale")
	cmd.Flags().Float64Var(&f.priorDF, "prior-df", 3, "Prior degrees of freedom (student_t only)")
	cmd.Flags().Float64Var(&f.credibleMass, "credible-mass", 0.95, "Credible interval mass")
	cmd.Flags().Float64Var(&f.ropeHalfWidth, "rope", 0, "ROPE half width (0 derives it from the outcome's spread)")
	cmd.Flags().IntVar(&f.timeoutSec, "timeout", 60, "Sampler timeout in seconds")
}

func (f *analysisFlags) toRequest() (app.AnalysisRequest, error) {
	family, err := regress.ParsePriorFamily(f.priorFamily)
	if err != nil {
		return app.AnalysisRequest{}, err
	}
	return app.AnalysisRequest{
		Seed:   f.seed,
		Rows:   f.rows,
		Chains: f.chains,
		Prior: regress.PriorSpec{
			Family:   family,
			Location: f.priorLocation,
			Scale:    f.priorScale,
			DF:       f.priorDF,
		},
		Iterations:     f.iterations,
		CredibleMass:   f.credibleMass,
		ROPEHalfWidth:  f.ropeHalfWidth,
		SamplerTimeout: time.Duration(f.timeoutSec) * time.Second,
	}, nil
}

func buildService() *app.AnalysisService {
	rngPort := rng.NewStreamAdapter()
	return app.NewAnalysisService(
		sim.NewGenerator(rngPort),
		ols.NewFitter(),
		mcmc.NewAdapter(rngPort),
		nil,
		internal.DefaultLogger,
	)
}

func newRunCmd() *cobra.Command {
	flags := &analysisFlags{}
	var asJSON, asMarkdown bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline and print the comparison report",
		Long: `Simulate the survey dataset, fit OLS, draw from the posterior and print
the frequentist-vs-Bayesian comparison.

Example: gobayes-cli run --seed 123 --rows 20 --prior gaussian`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest()
			if err != nil {
				return err
			}
			result, err := buildService().Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			switch {
			case asJSON:
				return printJSON(result)
			case asMarkdown:
				fmt.Println(report.RenderMarkdown(result))
			default:
				fmt.Print(report.RenderText(result))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print the report as Markdown")

	return cmd
}

func newSimulateCmd() *cobra.Command {
	var seed int64
	var rows int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the survey dataset and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := sim.NewGenerator(rng.NewStreamAdapter())
			tbl, err := generator.Simulate(cmd.Context(), seed, rows)
			if err != nil {
				return err
			}
			return printJSON(tbl)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 123, "Random seed")
	cmd.Flags().IntVar(&rows, "rows", 20, "Number of observations")

	return cmd
}

func newPlotCmd() *cobra.Command {
	flags := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Run the pipeline and render posterior density plots in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest()
			if err != nil {
				return err
			}
			result, chartOutput, err := runWithPlots(cmd.Context(), req, plot.NewRenderer())
			if err != nil {
				return err
			}
			fmt.Print(report.RenderText(result))
			fmt.Println()
			fmt.Print(chartOutput)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	flags := &analysisFlags{}
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the pipeline and export the report to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest()
			if err != nil {
				return err
			}
			result, err := buildService().Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if outPath == "" {
				_ = godotenv.Load()
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				outPath = cfg.Paths.ExcelFile
			}
			if err := excel.NewWriter(outPath).Write(result); err != nil {
				return err
			}
			fmt.Printf("report written to %s\n", outPath)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "Output workbook path (defaults to EXCEL_FILE or analysis_report.xlsx)")

	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP report server",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			server := ui.NewServer(buildService(), nil, cfg, internal.DefaultLogger)
			return server.Start(":" + cfg.Server.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (defaults to PORT or 8080)")

	return cmd
}

// runWithPlots re-samples so the raw draws are available for plotting;
// the analysis service only returns the summarized report. Sampling is
// seed-deterministic, so the re-drawn chains match the summarized ones
// bit for bit.
func runWithPlots(ctx context.Context, req app.AnalysisRequest, plotter ports.PlotterPort) (*regress.Report, string, error) {
	result, err := buildService().Run(ctx, req)
	if err != nil {
		return nil, "", err
	}

	rngPort := rng.NewStreamAdapter()
	generator := sim.NewGenerator(rngPort)
	tbl, err := generator.Simulate(ctx, req.Seed, req.Rows)
	if err != nil {
		return nil, "", err
	}
	sample, err := mcmc.NewAdapter(rngPort).Sample(ctx, samplePortsRequest(req, tbl))
	if err != nil {
		return nil, "", err
	}

	var out string
	for _, d := range sample.Coefficients {
		marker := 0.0
		if cs, ok := result.Posterior.Coefficient(d.Key); ok {
			marker = cs.Median
		}
		chart, err := plotter.RenderDensity(d.Key, d.Pooled(), marker)
		if err != nil {
			return nil, "", err
		}
		out += chart + "\n\n"
	}
	return result, out, nil
}

// samplePortsRequest rebuilds the sampler request the service used
func samplePortsRequest(req app.AnalysisRequest, tbl *table.ObservationTable) ports.SampleRequest {
	return ports.SampleRequest{
		Table:      tbl,
		Prior:      req.Prior,
		Seed:       req.Seed,
		Chains:     req.Chains,
		Iterations: req.Iterations,
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
