// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot renders histograms as SVG images.
package plot

import (
	"fmt"
	"html"
	"io"
	"math"
	"os"

	"github.com/aclements/go-moremath/scale"
	"github.com/pkg/errors"
	"github.com/thinkstats/firstweight/stats"
)

// Align is the placement of a bar relative to its value.
type Align int

const (
	// AlignCenter centers each bar on its value.
	AlignCenter Align = iota
	// AlignLeft puts each bar's left edge at its value.
	AlignLeft
	// AlignRight puts each bar's right edge at its value.
	AlignRight
)

// A Series is one set of histogram bars.
type Series struct {
	Label string

	// Xs are the bar values and Ys their heights.
	Xs, Ys []float64

	// Width is the bar width in data units. If zero, it is 0.9
	// times the smallest gap between adjacent values, or 1 if
	// there is only one value.
	Width float64

	Align Align
}

// HistSeries returns a Series with one bar per distinct value of h.
func HistSeries(h *stats.Hist) Series {
	items := h.Items()
	s := Series{
		Label: h.Label,
		Xs:    make([]float64, len(items)),
		Ys:    make([]float64, len(items)),
	}
	for i, it := range items {
		s.Xs[i] = it.Value
		s.Ys[i] = float64(it.Freq)
	}
	return s
}

func (s *Series) width() float64 {
	if s.Width > 0 {
		return s.Width
	}
	gap := math.Inf(1)
	for i := 1; i < len(s.Xs); i++ {
		if d := math.Abs(s.Xs[i] - s.Xs[i-1]); d > 0 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 1
	}
	return 0.9 * gap
}

// bar returns the horizontal extent of bar i.
func (s *Series) bar(i int, w float64) (x1, x2 float64) {
	x := s.Xs[i]
	switch s.Align {
	case AlignLeft:
		return x, x + w
	case AlignRight:
		return x - w, x
	}
	return x - w/2, x + w/2
}

// Options control the decoration of a chart.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// Axis, if non-nil, fixes the data ranges as
	// [xmin, xmax, ymin, ymax].
	Axis []float64

	// Width and Height are the image size in pixels. They default
	// to 640 by 480.
	Width, Height float64
}

// Margins around the plot area, in pixels.
const (
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 40
	marginBottom = 50
)

// Maximum number of major ticks per axis.
const (
	xTicks = 8
	yTicks = 6
)

// Render writes an SVG histogram of series to w. Series are drawn in
// order with colors from Set1_9 and partial opacity, so overlapping
// bars remain visible.
func Render(w io.Writer, opts Options, series ...Series) error {
	if len(series) == 0 {
		return errors.New("no series to plot")
	}
	if opts.Axis != nil && len(opts.Axis) != 4 {
		return errors.Errorf("axis has %d values, want 4", len(opts.Axis))
	}
	for i := range series {
		if len(series[i].Xs) != len(series[i].Ys) {
			return errors.Errorf("series %d has %d values and %d heights", i, len(series[i].Xs), len(series[i].Ys))
		}
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}

	// Data extents.
	var xData, yData scale.Linear
	first := true
	widths := make([]float64, len(series))
	for si := range series {
		s := &series[si]
		widths[si] = s.width()
		for i, y := range s.Ys {
			x1, x2 := s.bar(i, widths[si])
			if first {
				xData.Min, xData.Max = x1, x2
				first = false
			}
			xData.Min = math.Min(xData.Min, x1)
			xData.Max = math.Max(xData.Max, x2)
			yData.Max = math.Max(yData.Max, y)
		}
	}
	if first {
		xData.Max = 1
	}
	yData.Max *= 1.05
	if opts.Axis != nil {
		xData.Min, xData.Max = opts.Axis[0], opts.Axis[1]
		yData.Min, yData.Max = opts.Axis[2], opts.Axis[3]
	}
	if xData.Max <= xData.Min {
		xData.Min, xData.Max = xData.Min-0.5, xData.Min+0.5
	}
	if yData.Max <= yData.Min {
		yData.Max = yData.Min + 1
	}
	if opts.Axis == nil {
		xData.Nice(scale.TickOptions{Max: xTicks})
		yData.Nice(scale.TickOptions{Max: yTicks})
	}

	left, right := float64(marginLeft), width-marginRight
	top, bot := float64(marginTop), height-marginBottom
	xOut := scale.Linear{Min: left, Max: right}
	yOut := scale.Linear{Min: bot, Max: top}
	x := scale.QQ{Src: &xData, Dest: &xOut}
	y := scale.QQ{Src: &yData, Dest: &yOut}

	out := new(svg)
	fmt.Fprintf(out, `  <rect width="%f" height="%f" fill="white" />`+"\n", width, height)
	if opts.Title != "" {
		out.text(width/2, marginTop/2, labelFontSize+2, "middle", ` font-weight="bold"`, opts.Title)
	}

	// Bars.
	clip := fmt.Sprintf(`  <clipPath id="plot"><path d="%s" /></clipPath>`+"\n", svgPathRect(left, top, right, bot))
	out.WriteString(clip)
	out.WriteString(`  <g clip-path="url(#plot)">` + "\n")
	for si := range series {
		s := &series[si]
		fill := svgColor(Set1_9[si%len(Set1_9)])
		for i, v := range s.Ys {
			x1, x2 := s.bar(i, widths[si])
			title := fmt.Sprintf("%g: %g", s.Xs[i], v)
			out.rect(x.Map(x1), y.Map(0), x.Map(x2), y.Map(v), fill, 0.6, title)
		}
	}
	out.WriteString("  </g>\n")

	// Axes and ticks.
	out.line(left, bot, right, bot)
	out.line(left, top, left, bot)
	xt, xprec := axisTicks(xData, xTicks)
	for _, v := range xt {
		px := x.Map(v)
		out.line(px, bot, px, bot+4)
		out.text(px, bot+4+tickFontSize, tickFontSize, "middle", "", formatTick(v, xprec))
	}
	yt, yprec := axisTicks(yData, yTicks)
	for _, v := range yt {
		py := y.Map(v)
		out.line(left-4, py, left, py)
		out.text(left-6, py, tickFontSize, "end", ` dominant-baseline="central"`, formatTick(v, yprec))
	}
	if opts.XLabel != "" {
		out.text((left+right)/2, height-labelFontHeight/2, labelFontSize, "middle", "", opts.XLabel)
	}
	if opts.YLabel != "" {
		fmt.Fprintf(out, `  <text font-size="%d" text-anchor="middle" transform="translate(%f %f) rotate(-90)">%s</text>`+"\n", labelFontSize, float64(labelFontSize), (top+bot)/2, html.EscapeString(opts.YLabel))
	}

	// Legend.
	ly := top + 8
	for si, s := range series {
		if s.Label == "" {
			continue
		}
		fill := svgColor(Set1_9[si%len(Set1_9)])
		out.rect(right-110, ly, right-98, ly+12, fill, 0.6, "")
		out.text(right-92, ly+6, labelFontSize, "start", ` dominant-baseline="central"`, s.Label)
		ly += labelFontHeight
	}

	_, err := fmt.Fprintf(w,
		`<svg version="1.1" width="%f" height="%f" xmlns="http://www.w3.org/2000/svg">
%s</svg>
`,
		width,
		height,
		out.Bytes(),
	)
	return err
}

// Save renders series to an SVG file at path.
func Save(path string, opts Options, series ...Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, opts, series...); err != nil {
		f.Close()
		return errors.Wrapf(err, "rendering %s", path)
	}
	return f.Close()
}
