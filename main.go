package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/volsurf/pricing"
	"github.com/bcdannyboy/volsurf/render"
	"github.com/bcdannyboy/volsurf/sweep"
)

type runArgs struct {
	Spot       float64
	StrikeMin  float64
	StrikeMax  float64
	Strike     float64
	Maturity   float64
	Rate       float64
	Vol        float64
	Yield      float64
	Steps      int
	Model      string
	AxisPoints int
	JSONPath   string
}

var args runArgs

var rootCmd = &cobra.Command{
	Use:           "volsurf",
	Short:         "Price European options and render the (volatility, strike) price surface",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(args)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.Float64Var(&args.Spot, "spot", 100, "current underlying price (S)")
	flags.Float64Var(&args.StrikeMin, "strike-min", 80, "lowest strike of the sweep (K_min)")
	flags.Float64Var(&args.StrikeMax, "strike-max", 120, "highest strike of the sweep (K_max)")
	flags.Float64Var(&args.Strike, "strike", 100, "strike reported as the specific price (K)")
	flags.Float64Var(&args.Maturity, "maturity", 1, "time to maturity in years (T)")
	flags.Float64Var(&args.Rate, "rate", 0.05, "annualized risk-free rate (r)")
	flags.Float64Var(&args.Vol, "vol", 0.2, "base implied volatility (sigma)")
	flags.Float64Var(&args.Yield, "yield", 0, "continuous dividend yield (q)")
	flags.IntVar(&args.Steps, "steps", 500, "binomial lattice depth (N)")
	flags.StringVar(&args.Model, "model", "binomial", "pricing model: binomial or blackscholes")
	flags.IntVar(&args.AxisPoints, "strikes", 10, "number of strikes in the sweep axis")
	flags.StringVar(&args.JSONPath, "json", "", "optional path for a JSON export of the surfaces")
}

// applyEnvDefaults lets a .env file override flag defaults. Explicit flags
// still win because cobra parses them after this runs.
func applyEnvDefaults() {
	if v, ok := os.LookupEnv("VOLSURF_RATE"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			args.Rate = f
		}
	}
	if v, ok := os.LookupEnv("VOLSURF_STEPS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			args.Steps = n
		}
	}
}

func run(a runArgs) error {
	if a.Strike < a.StrikeMin || a.Strike > a.StrikeMax {
		return fmt.Errorf("strike %.2f must lie between %.2f and %.2f", a.Strike, a.StrikeMin, a.StrikeMax)
	}

	base := pricing.Parameters{
		Spot:           a.Spot,
		Strike:         a.Strike,
		TimeToMaturity: a.Maturity,
		Rate:           a.Rate,
		Volatility:     a.Vol,
		DividendYield:  a.Yield,
		Steps:          a.Steps,
	}

	var price sweep.PairPricer
	switch a.Model {
	case "binomial":
		price = pricing.BinomialPricePair
	case "blackscholes":
		price = pricing.BlackScholes
	default:
		return fmt.Errorf("unknown model %q", a.Model)
	}

	call, put, err := price(base)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"model":    a.Model,
		"spot":     a.Spot,
		"strike":   a.Strike,
		"maturity": a.Maturity,
		"vol":      a.Vol,
	}).Info("priced specific strike")

	fmt.Printf("Specific Call Price: %.2f and Put Price: %.2f for K=%v, T=%v years, vol=%v, S=%v\n\n",
		call, put, a.Strike, a.Maturity, a.Vol, a.Spot)

	vols, err := sweep.VolatilityAxis(a.Vol, sweep.DefaultVolSpread, sweep.DefaultVolStep)
	if err != nil {
		return err
	}
	strikes, err := sweep.StrikeAxis(a.StrikeMin, a.StrikeMax, a.AxisPoints)
	if err != nil {
		return err
	}

	grid, err := sweep.EvaluateGrid(base, vols, strikes, price)
	if err != nil {
		return err
	}

	if err := render.Heatmap(os.Stdout, "Call Option Prices", grid, pricing.Call); err != nil {
		return err
	}
	fmt.Println()
	if err := render.Heatmap(os.Stdout, "Put Option Prices", grid, pricing.Put); err != nil {
		return err
	}

	if a.JSONPath != "" {
		report := render.NewReport(base, a.Model, call, put, grid)
		if err := render.WriteJSON(a.JSONPath, report); err != nil {
			return err
		}
		log.Infof("wrote surfaces to %s", a.JSONPath)
	}

	return nil
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env")
	}
	applyEnvDefaults()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
