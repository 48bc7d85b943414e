// Package render draws an annual rise/set chart as an image file.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/litescript/planet-chart/internal/almanac"
	"github.com/litescript/planet-chart/internal/ephem"
)

// ErrUnsupportedFormat is returned for image formats the plot backend
// cannot write.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats lists the accepted output formats.
var Formats = []string{"png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff"}

// Options controls the output image.
type Options struct {
	Width  float64 // inches
	Height float64 // inches
	Format string  // file extension without the dot
}

// DefaultOptions is a landscape US-letter PNG.
func DefaultOptions() Options {
	return Options{Width: 11, Height: 8.5, Format: "png"}
}

// Validate checks the format and size.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image size %vx%v inches must be positive", o.Width, o.Height)
	}
	for _, f := range Formats {
		if strings.EqualFold(o.Format, f) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, o.Format)
}

// Theme colours.
var (
	background = color.Black
	foreground = color.White
	gridColor  = color.RGBA{R: 0x1d, G: 0x1d, B: 0x1d, A: 0xff}
	seasonLine = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// bodyColors follows the usual colour associations of each body.
var bodyColors = map[string]color.Color{
	"Sun":     color.White,
	"Mercury": color.RGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}, // brown
	"Venus":   color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}, // yellow
	"Mars":    color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	"Jupiter": color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
	"Saturn":  color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}, // pink
	"Uranus":  color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	"Neptune": color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
}

var twilightColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// BodyColor returns the line colour for a body, grey for unknown names.
func BodyColor(b ephem.Body) color.Color {
	if c, ok := bodyColors[b.Name]; ok {
		return c
	}
	return twilightColor
}

// LineStyle returns the style a series is drawn with: solid for rises,
// dashed for sets.
func LineStyle(s almanac.Series) draw.LineStyle {
	ls := draw.LineStyle{Color: BodyColor(s.Body), Width: vg.Points(1)}
	if s.Twilight {
		ls.Color = twilightColor
	}
	if s.Kind == almanac.Set {
		ls.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
	return ls
}

// Segments splits a series at every sample that is not drawn. Each segment
// holds (hour, day index) points.
func Segments(s almanac.Series) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, smp := range s.Samples {
		if !smp.Drawn() {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: smp.Hours, Y: float64(i)})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Draw builds the chart plot.
func Draw(c *almanac.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = background

	p.Title.Text = fmt.Sprintf("Planet Rise and Set Times Over %d", c.Config.Year)
	p.Title.TextStyle.Color = foreground
	styleAxis(&p.X, "Hours from Midnight UTC")
	styleAxis(&p.Y, "Day of Year")

	p.X.Min, p.X.Max = c.Config.Window()
	if c.Config.InvertX() {
		p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	p.X.Tick.Marker = hourTicks{}
	p.Y.Min, p.Y.Max = 0, almanac.DaysPerYear
	p.Y.Tick.Marker = monthTicks{}

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	for _, m := range c.Seasons {
		if m.DayIndex < 0 {
			continue
		}
		y := float64(m.DayIndex)
		l, err := plotter.NewLine(plotter.XYs{{X: p.X.Min, Y: y}, {X: p.X.Max, Y: y}})
		if err != nil {
			return nil, fmt.Errorf("season marker %s: %w", m.Name, err)
		}
		l.Color = seasonLine
		l.Width = vg.Points(0.5)
		l.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
		p.Add(l)
	}

	p.Legend.TextStyle.Color = foreground
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.ThumbnailWidth = vg.Points(24)

	for _, s := range c.AllSeries() {
		style := LineStyle(s)
		for _, seg := range Segments(s) {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Label(), err)
			}
			l.LineStyle = style
			p.Add(l)
		}
		p.Legend.Add(s.Label(), &plotter.Line{LineStyle: style})
	}

	// Lines reaching outside the window widen the axes when added.
	p.X.Min, p.X.Max = c.Config.Window()
	p.Y.Min, p.Y.Max = 0, almanac.DaysPerYear
	return p, nil
}

// legendPad separates the legend from the axes and the image edge.
const legendPad = vg.Length(8)

// drawFigure draws p on c with the legend outside the axes, on the right
// and centred vertically. It returns the area given to the axes.
func drawFigure(p *plot.Plot, labels []string, c draw.Canvas) draw.Canvas {
	c.SetColor(background)
	c.Fill(c.Rectangle.Path())

	em := p.Legend.TextStyle.Width(" ")
	var textW vg.Length
	for _, l := range labels {
		textW = max(textW, p.Legend.TextStyle.Width(l))
	}
	pc := c
	pc.Max.X -= p.Legend.ThumbnailWidth + em + textW + 2*legendPad

	da := p.DataCanvas(pc)
	n := vg.Length(len(labels))
	entryH := p.Legend.TextStyle.Height("Ag")
	legendH := n*entryH + max(n-1, 0)*p.Legend.Padding
	p.Legend.XOffs = pc.Max.X - da.Min.X + legendPad
	p.Legend.YOffs = -(da.Max.Y - da.Min.Y - legendH) / 2
	p.Draw(pc)
	return pc
}

func legendLabels(c *almanac.Chart) []string {
	var out []string
	for _, s := range c.AllSeries() {
		out = append(out, s.Label())
	}
	return out
}

// FileName is the output name for a chart year and format.
func FileName(year int, format string) string {
	return fmt.Sprintf("planet_chart_%d.%s", year, strings.ToLower(format))
}

// Save draws the chart and writes it to dir, returning the file path.
func Save(c *almanac.Chart, dir string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	p, err := Draw(c)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(c.Config.Year, opts.Format))
	wt, err := draw.NewFormattedCanvas(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, strings.ToLower(opts.Format))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", opts.Format, err)
	}
	drawFigure(p, legendLabels(c), draw.New(wt))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write chart file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close chart file: %w", err)
	}
	return path, nil
}

func styleAxis(a *plot.Axis, label string) {
	a.Label.Text = label
	a.Label.TextStyle.Color = foreground
	a.Color = foreground
	a.Tick.Color = foreground
	a.Tick.Label.Color = foreground
}

// hourTicks puts a labelled tick every two hours and a minor tick on the
// hours between.
type hourTicks struct{}

func (hourTicks) Ticks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for h := int(math.Ceil(lo)); float64(h) <= hi; h++ {
		t := plot.Tick{Value: float64(h)}
		if h%2 == 0 {
			t.Label = fmt.Sprintf("%d", h)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// monthTicks labels the first day of each month.
type monthTicks struct{}

func (monthTicks) Ticks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for m, name := range monthNames {
		idx := float64(almanac.DayIndex(time.Month(m+1), 1))
		if idx < lo || idx > hi {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: idx, Label: name})
	}
	return ticks
}
