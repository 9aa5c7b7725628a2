package main

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/rrt/motionplan"
	"go.viam.com/rrt/referenceframe"
	"go.viam.com/rrt/spatialmath"
)

const (
	plotSize       = 6 * vg.Inch
	circleSegments = 48
)

var (
	obstacleColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	treeColors    = []color.Color{
		color.RGBA{R: 70, G: 130, B: 180, A: 255},
		color.RGBA{R: 60, G: 179, B: 113, A: 255},
	}
	pathColor  = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	startColor = color.RGBA{G: 100, A: 255}
	goalColor  = color.RGBA{R: 255, G: 140, A: 255}
)

// edgePlotter draws tree edges as independent segments.
type edgePlotter struct {
	segments [][2]plotter.XY
	draw.LineStyle
}

func newEdgePlotter(tree *motionplan.Tree, c color.Color) *edgePlotter {
	ep := &edgePlotter{
		LineStyle: draw.LineStyle{Color: c, Width: vg.Points(0.5)},
	}
	tree.Edges(func(parent, child referenceframe.Configuration) {
		ep.segments = append(ep.segments, [2]plotter.XY{
			{X: parent[0], Y: parent[1]},
			{X: child[0], Y: child[1]},
		})
	})
	return ep
}

// Plot implements plot.Plotter.
func (ep *edgePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, seg := range ep.segments {
		c.StrokeLine2(ep.LineStyle, trX(seg[0].X), trY(seg[0].Y), trX(seg[1].X), trY(seg[1].Y))
	}
}

// outline returns the footprint of an obstacle in the first two coordinates.
func outline(g spatialmath.Geometry) (plotter.XYs, error) {
	switch geom := g.(type) {
	case *spatialmath.Box:
		c, h := geom.Center(), geom.HalfSize()
		return plotter.XYs{
			{X: c.X - h.X, Y: c.Y - h.Y},
			{X: c.X + h.X, Y: c.Y - h.Y},
			{X: c.X + h.X, Y: c.Y + h.Y},
			{X: c.X - h.X, Y: c.Y + h.Y},
		}, nil
	case *spatialmath.Sphere:
		c, r := geom.Center(), geom.Radius()
		xys := make(plotter.XYs, circleSegments)
		for i := range xys {
			theta := 2 * math.Pi * float64(i) / circleSegments
			xys[i] = plotter.XY{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
		}
		return xys, nil
	case *spatialmath.Polygon:
		verts := geom.Vertices()
		xys := make(plotter.XYs, len(verts))
		for i, v := range verts {
			xys[i] = plotter.XY{X: v.X, Y: v.Y}
		}
		return xys, nil
	default:
		return nil, errors.Errorf("cannot plot geometry %s", g)
	}
}

func pathXYs(path referenceframe.Path) plotter.XYs {
	xys := make(plotter.XYs, len(path))
	for i, q := range path {
		xys[i] = plotter.XY{X: q[0], Y: q[1]}
	}
	return xys
}

// savePlot renders the first two coordinates of a solved request to a PNG, SVG or PDF file chosen
// by the extension of filePath.
func savePlot(filePath, title string, req *motionplan.PlanRequest, res *motionplan.PlanResult) error {
	if len(req.Start) < 2 {
		return errors.Errorf("cannot plot a %d dimensional problem", len(req.Start))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "q0"
	p.Y.Label.Text = "q1"
	p.X.Min, p.X.Max = req.Limits[0].Min, req.Limits[0].Max
	p.Y.Min, p.Y.Max = req.Limits[1].Min, req.Limits[1].Max
	p.Add(plotter.NewGrid())

	for _, obstacle := range req.Obstacles {
		xys, err := outline(obstacle)
		if err != nil {
			return err
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return errors.Wrapf(err, "error plotting obstacle %s", obstacle)
		}
		poly.Color = obstacleColor
		poly.LineStyle.Width = vg.Points(0)
		p.Add(poly)
	}

	for i, tree := range res.Trees {
		p.Add(newEdgePlotter(tree, treeColors[i%len(treeColors)]))
	}

	line, err := plotter.NewLine(pathXYs(res.Path))
	if err != nil {
		return errors.Wrap(err, "error plotting path")
	}
	line.LineStyle.Color = pathColor
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("path", line)

	for _, endpoint := range []struct {
		name string
		q    referenceframe.Configuration
		c    color.Color
	}{
		{"start", req.Start, startColor},
		{"goal", req.Goal, goalColor},
	} {
		scatter, err := plotter.NewScatter(pathXYs(referenceframe.Path{endpoint.q}))
		if err != nil {
			return errors.Wrapf(err, "error plotting %s", endpoint.name)
		}
		scatter.GlyphStyle.Color = endpoint.c
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(endpoint.name, scatter)
	}

	return errors.Wrap(p.Save(plotSize, plotSize, filePath), "error saving plot")
}
