package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/cmplx"

	"gonum.org/v1/plot"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var lineColors = []color.RGBA{
	{R: 0, G: 0, B: 255, A: 255}, // blue
	{R: 255, G: 0, B: 0, A: 255}, // red
	{R: 0, G: 150, B: 0, A: 255}, // green
	{R: 160, G: 0, B: 160, A: 255},
	{R: 230, G: 130, B: 0, A: 255},
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()

	// Modify the font fields directly on existing styles
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid()) // grid + ticks
	return p
}

// amplitudeAndPhase splits F into |F| and an unwrapped phase.
func amplitudeAndPhase(F []complex128) (amp, phase []float64) {
	amp = make([]float64, len(F))
	phase = make([]float64, len(F))
	offset := 0.0
	for i, v := range F {
		amp[i] = cmplx.Abs(v)
		phase[i] = cmplx.Phase(v) + offset
		if i > 0 {
			// Remove 2π jumps
			for phase[i]-phase[i-1] > math.Pi {
				phase[i] -= 2 * math.Pi
				offset -= 2 * math.Pi
			}
			for phase[i]-phase[i-1] < -math.Pi {
				phase[i] += 2 * math.Pi
				offset += 2 * math.Pi
			}
		}
	}
	return amp, phase
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// renderStacked draws the plots one above the other into an in-memory image.
func renderStacked(wPx, hPx float64, plots ...*plot.Plot) image.Image {
	// Choose a "virtual" size in vg units and map to pixels via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := draw.New(c)

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	t := draw.Tiles{Rows: len(plots), Cols: 1, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(rows, t, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}
	return c.Image()
}

func makeAmplificationImage(title string, freqs []float64, F []complex128) (image.Image, error) {
	amp, phase := amplitudeAndPhase(F)

	pAmp := newPlot(title, "frequency (Hz)", "|F|")
	line, err := plotter.NewLine(xys(freqs, amp))
	if err != nil {
		return nil, err
	}
	line.Color = lineColors[0]
	pAmp.Add(line)

	// Unlensed level
	hline, err := plotter.NewLine(plotter.XYs{{X: freqs[0], Y: 1}, {X: freqs[len(freqs)-1], Y: 1}})
	if err != nil {
		return nil, err
	}
	hline.Dashes = []vg.Length{
		vg.Points(6), // dash length
		vg.Points(4), // gap length
	}
	hline.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255} // black
	pAmp.Add(hline)

	pPhase := newPlot("", "frequency (Hz)", "arg F (rad)")
	line, err = plotter.NewLine(xys(freqs, phase))
	if err != nil {
		return nil, err
	}
	line.Color = lineColors[1]
	pPhase.Add(line)

	return renderStacked(1200, 800, pAmp, pPhase), nil
}

func saveAmplificationPlot(filename, title string, freqs []float64, F []complex128) error {
	img, err := makeAmplificationImage(title, freqs, F)
	if err != nil {
		return err
	}
	return savePNG(filename, img)
}

func saveLensTablePlot(filename string, lenses [][2]float64, freqs []float64, table [][]complex128) error {
	p := newPlot("Point lens amplification", "frequency (Hz)", "|F|")
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Typeface = "Liberation"
	p.Legend.TextStyle.Font.Variant = "Sans"

	for i, F := range table {
		amp, _ := amplitudeAndPhase(F)
		line, err := plotter.NewLine(xys(freqs, amp))
		if err != nil {
			return err
		}
		line.Color = lineColors[i%len(lineColors)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("M = %g Msun, y = %g", lenses[i][0], lenses[i][1]), line)
	}

	return p.Save(10*vg.Inch, 5*vg.Inch, filename)
}

func saveStrainPlot(filename string, dt float64, unlensed, lensed []float64) error {
	t := make([]float64, len(unlensed))
	for i := range t {
		t[i] = float64(i) * dt
	}

	pUnlensed := newPlot("Plus polarization, unlensed", "time (s)", "strain")
	line, err := plotter.NewLine(xys(t, unlensed))
	if err != nil {
		return err
	}
	line.Color = lineColors[0]
	pUnlensed.Add(line)

	pLensed := newPlot("Plus polarization, lensed", "time (s)", "strain")
	line, err = plotter.NewLine(xys(t, lensed))
	if err != nil {
		return err
	}
	line.Color = lineColors[1]
	pLensed.Add(line)

	span := t[len(t)-1]
	pUnlensed.X.Tick.Marker = StepTicks{Step: span / 16, Format: "%.2f"}
	pLensed.X.Tick.Marker = StepTicks{Step: span / 16, Format: "%.2f"}

	return savePNG(filename, renderStacked(1200, 800, pUnlensed, pLensed))
}

type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}
