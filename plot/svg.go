// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
)

// Qualitative palettes from Color Brewer.
var Set1_9 = []color.Color{color.RGBA{228, 26, 28, 255}, color.RGBA{55, 126, 184, 255}, color.RGBA{77, 175, 74, 255}, color.RGBA{152, 78, 163, 255}, color.RGBA{255, 127, 0, 255}, color.RGBA{255, 255, 51, 255}, color.RGBA{166, 86, 40, 255}, color.RGBA{247, 129, 191, 255}, color.RGBA{153, 153, 153, 255}}

const labelFontSize = 12
const labelFontHeight = labelFontSize * 5 / 4
const tickFontSize = 10

// svg accumulates the body of an SVG document.
type svg struct {
	bytes.Buffer
}

func (s *svg) text(x, y float64, size int, anchor, extra, label string) {
	fmt.Fprintf(s, `  <text x="%f" y="%f" font-size="%d" text-anchor="%s"%s>%s</text>`+"\n", x, y, size, anchor, extra, html.EscapeString(label))
}

func (s *svg) line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(s, `  <path d="M%f %fL%f %f" stroke="black" stroke-width="1px" />`+"\n", x1, y1, x2, y2)
}

func (s *svg) rect(x1, y1, x2, y2 float64, fill string, opacity float64, title string) {
	if title == "" {
		fmt.Fprintf(s, `  <path d="%s" fill="%s" fill-opacity="%g" />`+"\n", svgPathRect(x1, y1, x2, y2), fill, opacity)
		return
	}
	fmt.Fprintf(s, `  <path d="%s" fill="%s" fill-opacity="%g"><title>%s</title></path>`+"\n", svgPathRect(x1, y1, x2, y2), fill, opacity, html.EscapeString(title))
}

func svgColor(c color.Color) string {
	c2 := color.NRGBAModel.Convert(c).(color.NRGBA)
	if c2.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c2.R, c2.G, c2.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%f)", c2.R, c2.G, c2.B, float64(c2.A)/255)
}

func svgPathRect(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M%f %fH%fV%fH%fz", x1, y1, x2, y2, x1)
}

// axisTicks returns at most max major ticks of s and the number of
// decimal places needed to print them.
func axisTicks(s scale.Linear, max int) ([]float64, int) {
	major, _ := s.Ticks(scale.TickOptions{Max: max})
	prec := 0
	if len(major) > 1 {
		if step := major[1] - major[0]; step < 1 {
			prec = int(math.Ceil(-math.Log10(step) - 1e-9))
		}
	}
	return major, prec
}

func formatTick(v float64, prec int) string {
	p := math.Pow(10, float64(prec))
	v = math.Round(v*p) / p
	if v == 0 {
		// Avoid printing "-0".
		v = 0
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
