// Package export renders the dashboard charts to PNG files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/abhisek/voltscope/internal/aggregate"
	"github.com/abhisek/voltscope/internal/energy"
)

// ErrTooFewPoints is returned for a series that cannot span an x range.
var ErrTooFewPoints = errors.New("at least two points are required")

const (
	chartWidth  = 1024
	chartHeight = 512
)

var (
	colorFossil = drawing.Color{R: 100, G: 116, B: 139, A: 255}
	colorClean  = drawing.Color{R: 16, G: 185, B: 129, A: 255}
	colorSolar  = drawing.Color{R: 245, G: 158, B: 11, A: 255}
	colorWind   = drawing.Color{R: 59, G: 130, B: 246, A: 255}
	colorCoal   = drawing.Color{R: 71, G: 85, B: 105, A: 255}
	colorGas    = drawing.Color{R: 239, G: 68, B: 68, A: 255}
)

// Transition writes the fossil vs. clean line chart for region to w.
func Transition(w io.Writer, region energy.Region, points []energy.TransitionPoint) error {
	if len(points) < 2 {
		return fmt.Errorf("transition chart for %s: %w", region, ErrTooFewPoints)
	}

	years := make([]float64, len(points))
	fossil := make([]float64, len(points))
	clean := make([]float64, len(points))
	for i, p := range points {
		years[i] = float64(p.Year)
		fossil[i] = float64(p.FossilTotal)
		clean[i] = float64(p.CleanTotal)
	}

	ch := newChart(fmt.Sprintf("%s: Transition Progress", region), []chart.Series{
		line("Fossil Fuels", years, fossil, colorFossil),
		line("Clean Energy", years, clean, colorClean),
	})
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render transition chart: %w", err)
	}
	return nil
}

// Technology writes the per-technology line chart for region to w.
func Technology(w io.Writer, region energy.Region, points []energy.TechnologyPoint) error {
	if len(points) < 2 {
		return fmt.Errorf("technology chart for %s: %w", region, ErrTooFewPoints)
	}

	years := make([]float64, len(points))
	solar := make([]float64, len(points))
	wind := make([]float64, len(points))
	coal := make([]float64, len(points))
	gas := make([]float64, len(points))
	for i, p := range points {
		years[i] = float64(p.Year)
		solar[i] = float64(p.Solar)
		wind[i] = float64(p.Wind)
		coal[i] = float64(p.Coal)
		gas[i] = float64(p.Gas)
	}

	ch := newChart(fmt.Sprintf("%s: Technology Breakdown", region), []chart.Series{
		line("Solar", years, solar, colorSolar),
		line("Wind", years, wind, colorWind),
		line("Coal", years, coal, colorCoal),
		line("Gas", years, gas, colorGas),
	})
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render technology chart: %w", err)
	}
	return nil
}

// Files are the paths written by WriteRegion.
type Files struct {
	Transition string
	Technology string
}

// WriteRegion renders both charts for region into dir as
// <slug>-transition.png and <slug>-technology.png. dir is created if
// needed.
func WriteRegion(dir string, svc *aggregate.Service, region energy.Region) (Files, error) {
	transition, err := svc.TransitionSeries(region)
	if err != nil {
		return Files{}, err
	}
	technology, err := svc.TechnologySeries(region)
	if err != nil {
		return Files{}, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("create export dir: %w", err)
	}

	files := Files{
		Transition: filepath.Join(dir, region.Slug()+"-transition.png"),
		Technology: filepath.Join(dir, region.Slug()+"-technology.png"),
	}
	if err := writeFile(files.Transition, func(w io.Writer) error {
		return Transition(w, region, transition)
	}); err != nil {
		return Files{}, err
	}
	if err := writeFile(files.Technology, func(w io.Writer) error {
		return Technology(w, region, technology)
	}); err != nil {
		return Files{}, err
	}
	return files, nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return render(f)
}

func newChart(title string, series []chart.Series) chart.Chart {
	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Year", ValueFormatter: chart.IntValueFormatter},
		YAxis:      chart.YAxis{Name: "TWh", ValueFormatter: chart.IntValueFormatter},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func line(name string, xs, ys []float64, color drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
	}
}
