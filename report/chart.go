// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart dimensions.
const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 8 * vg.Inch
	chartDPI    = 100
)

var (
	experimentalColor = color.RGBA{R: 0xff, A: 0xff}
	idealColor        = color.RGBA{B: 0xff, A: 0xff}
)

// Chart draws the experimental speedup of pts against the ideal
// speedup y=x and writes it to w as a PNG image. Points must be
// finite.
func Chart(w io.Writer, title string, pts []Point) error {
	xys := make(plotter.XYs, len(pts))
	ideal := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i] = plotter.XY{X: float64(p.Processes), Y: p.Speedup}
		ideal[i] = plotter.XY{X: float64(p.Processes), Y: float64(p.Processes)}
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "Processors"
	pl.Y.Label.Text = "Speedup"
	pl.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = experimentalColor
	points.Color = experimentalColor
	points.Shape = draw.CircleGlyph{}

	idealLine, err := plotter.NewLine(ideal)
	if err != nil {
		return err
	}
	idealLine.Color = idealColor

	pl.Add(line, points, idealLine)
	pl.Legend.Add("Experimental", line, points)
	pl.Legend.Add("Ideal", idealLine)
	pl.Legend.Top = true
	pl.Legend.Left = true

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(chartWidth, chartHeight),
		vgimg.UseDPI(chartDPI),
		vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))
	_, err = can.WriteTo(w)
	return err
}

// SaveChart writes the chart of pts to the PNG file path.
func SaveChart(path, title string, pts []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Chart(f, title, pts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
