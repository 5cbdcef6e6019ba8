package main

import (
	"fmt"
	"os"
	"time"

	json "github.com/KevinWang15/go-json5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/GWlensing/lensing"
	"github.com/bob-anderson-ok/GWlensing/waveform"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "0_3_0"

// Environment variable consulted when no parameter file is given on the command line.
const paramsEnvVar = "GWLENSING_PARAMS"

type LensingEvent struct {
	Title           string
	ShowInput       bool
	RunSelfChecks   bool
	PlotFile        string
	PathToLensTable string
	LensTable       [][2]float64
	Workers         int

	FreqMinHz     float64
	FreqMaxHz     float64
	FreqNumPoints int

	FactorKind      string
	DeltaPhiRad     float64
	MuRel           float64
	DeltaTSec       float64
	DeltaT10Sec     float64
	DeltaT20Sec     float64
	PositivePhase   int
	LensMassMsun    float64
	ImpactParameter float64

	SourceGiven          bool
	Source               waveform.BinaryBlackHole
	TimeOfCoalescenceSec float64
	TimeDomainSamples    int
	TimeDomainDeltaFHz   float64
}

// factor builds the amplification factor selected by factor_kind.
func (e LensingEvent) factor() lensing.Factor {
	switch e.FactorKind {
	case "one_image":
		return lensing.OneImage{DeltaPhi: e.DeltaPhiRad}
	case "two_images":
		return lensing.TwoImages{MuRel: e.MuRel, DeltaT: e.DeltaTSec, DeltaPhi: e.DeltaPhiRad}
	case "fold_caustic":
		return lensing.FoldCaustic{DeltaT: e.DeltaTSec, PositivePhase: e.PositivePhase}
	case "cusp_caustic":
		return lensing.CuspCaustic{DeltaT10: e.DeltaT10Sec, DeltaT20: e.DeltaT20Sec, MuRel: e.MuRel, PositivePhase: e.PositivePhase}
	default:
		return lensing.PointLens{MassLz: e.LensMassMsun, Y: e.ImpactParameter}
	}
}

func main() {

	programStart := time.Now()

	// A .env file is optional
	_ = godotenv.Load()

	args := os.Args

	var path string
	switch {
	case len(args) == 2:
		path = args[1]
	case len(args) == 1 && os.Getenv(paramsEnvVar) != "":
		path = os.Getenv(paramsEnvVar)
	default:
		fmt.Printf("\n\tWrong number of arguments.\n\tUsage: GWlensing <parameter-file>  (or set %s)\n", paramsEnvVar)
		os.Exit(1)
	}

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var event LensingEvent
	msg, ok := validateJsonFileAndFillEvent(jsonTable, &event)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of complete jsonTable
	if event.ShowInput {
		fmt.Printf("%s", "\nPrintout of  complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	if event.RunSelfChecks {
		if !runSelfChecks() {
			os.Exit(5)
		}
		fmt.Println()
	}

	freqs := floats.Span(make([]float64, event.FreqNumPoints), event.FreqMinHz, event.FreqMaxHz)
	fmt.Printf("Frequency grid: %d points from %0.3f Hz to %0.3f Hz\n", len(freqs), freqs[0], freqs[len(freqs)-1])

	factor := event.factor()
	if err := factor.Validate(); err != nil {
		fmt.Println(fmt.Errorf("\n\tInvalid %s parameters: %w", event.FactorKind, err))
		os.Exit(6)
	}

	if event.FactorKind == "point_lens" {
		images, err := lensing.PointMassImages(lensing.SI(), event.LensMassMsun, event.ImpactParameter)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tPoint mass kinematics failed: %w", err))
			os.Exit(6)
		}
		fmt.Printf("Relative magnification of the images is %0.6f\n", images.RelativeMagnification)
		fmt.Printf("Time delay between the images is %0.6f ms\n", images.TimeDelay*1e3)
		fmt.Printf("Geometric optics holds above about %0.1f Hz\n\n", 1/images.TimeDelay)
	}

	start := time.Now()
	var F []complex128
	if event.FactorKind == "point_lens" {
		wo := lensing.WaveOptics{Constants: lensing.SI(), Workers: event.Workers}
		F, err = wo.PointLens(freqs, event.LensMassMsun, event.ImpactParameter)
	} else {
		F, err = factor.Amplification(freqs)
	}
	if err != nil {
		logrus.WithError(err).WithField("factor", event.FactorKind).Error("amplification failed")
		os.Exit(7)
	}
	elapsed := time.Since(start)
	fmt.Printf("Calculation of the %s amplification factor took %s\n", event.FactorKind, elapsed)

	title := event.Title
	if title == "" {
		title = event.FactorKind + " amplification factor"
	}
	err = saveAmplificationPlot(event.PlotFile, title, freqs, F)
	if err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", event.PlotFile, err))
		os.Exit(8)
	}

	// If a path to a lens table was given, evaluate every lens in it on the same grid
	if event.PathToLensTable != "" {
		data, err := os.ReadFile(event.PathToLensTable)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tAttempt to read file %q failed: %w\n", event.PathToLensTable, err))
			os.Exit(9)
		}
		event.LensTable, err = parseArrayFormat(data)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tError reading lens table %q: %w\n", event.PathToLensTable, err))
			os.Exit(10)
		}
		if len(event.LensTable) < 1 {
			fmt.Println(fmt.Errorf("\n\tThe lens table %q is empty.", event.PathToLensTable))
			os.Exit(11)
		}

		factors := make([]lensing.Factor, len(event.LensTable))
		for i, row := range event.LensTable {
			factors[i] = lensing.PointLens{MassLz: row[0], Y: row[1]}
		}

		start = time.Now()
		table, err := lensing.AmplifyAll(freqs, factors, event.Workers)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tLens table evaluation failed: %w", err))
			os.Exit(12)
		}
		elapsed = time.Since(start)
		fmt.Printf("Calculation of %d point lens factors took %s\n", len(table), elapsed)

		err = saveLensTablePlot("lens_table.png", event.LensTable, freqs, table)
		if err != nil {
			fmt.Println(fmt.Errorf("writing of %q failed: %w", "lens_table.png", err))
			os.Exit(13)
		}
	}

	if event.SourceGiven {
		err = lensChirp(event)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tLensing of the chirp failed: %w", err))
			os.Exit(14)
		}
	}

	elapsed = time.Since(programStart)
	fmt.Printf("\nTotal program run time is %s\n", elapsed)
}

// lensChirp lenses a Newtonian chirp with the selected factor and plots the
// unlensed and lensed strain in the time domain.
func lensChirp(e LensingEvent) error {
	freqs, err := waveform.OneSidedGrid(e.TimeDomainSamples, e.TimeDomainDeltaFHz)
	if err != nil {
		return err
	}

	gen := waveform.NewtonianChirp{Constants: lensing.SI(), TimeOfCoalescence: e.TimeOfCoalescenceSec}
	opts := waveform.DefaultOptions()
	opts.Approximant = waveform.NewtonianSPA

	start := time.Now()
	unlensed, err := gen.Generate(freqs, e.Source, opts)
	if err != nil {
		return err
	}
	lensed, err := waveform.Lens(freqs, gen, e.Source, opts, e.factor())
	if err != nil {
		return err
	}

	h, err := waveform.ToTimeDomain(unlensed.Plus, e.TimeDomainDeltaFHz)
	if err != nil {
		return err
	}
	hl, err := waveform.ToTimeDomain(lensed.Plus, e.TimeDomainDeltaFHz)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("Generation and lensing of the chirp took %s\n", elapsed)

	dt := 1 / (float64(e.TimeDomainSamples) * e.TimeDomainDeltaFHz)
	return saveStrainPlot("time_domain.png", dt, h, hl)
}
