package dbg

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

const drawPadding = 16

// Triangle2D is the minimal shape render needs: three 2D points and their
// mesh vertex indices, plus whether the triangle's edges are constrained,
// so constrained boundaries can be drawn distinctly from ordinary Delaunay
// edges.
type Triangle2D struct {
	A, B, C                [2]float64
	AIndex, BIndex, CIndex int32
	ConstrainedAB          bool
	ConstrainedBC          bool
	ConstrainedCA          bool
}

// RenderMesh rasterizes triangles to path and cats the result to stdout as
// an inline terminal image (iTerm2/Kitty-compatible).
func RenderMesh(triangles []Triangle2D, scale float64, path string) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, tr := range triangles {
		for _, p := range [][2]float64{tr.A, tr.B, tr.C} {
			minX = math.Min(minX, p[0])
			minY = math.Min(minY, p[1])
			maxX = math.Max(maxX, p[0])
			maxY = math.Max(maxY, p[1])
		}
	}
	if len(triangles) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1 / scale)
	c.SetRGB(0.6, 0.6, 0.6)
	for _, tr := range triangles {
		c.MoveTo(tr.A[0], tr.A[1])
		c.LineTo(tr.B[0], tr.B[1])
		c.LineTo(tr.C[0], tr.C[1])
		c.ClosePath()
		c.Stroke()
	}

	c.SetLineWidth(2 / scale)
	c.SetRGB(0.8, 0.1, 0.1)
	for _, tr := range triangles {
		if tr.ConstrainedAB {
			c.MoveTo(tr.A[0], tr.A[1])
			c.LineTo(tr.B[0], tr.B[1])
			c.Stroke()
		}
		if tr.ConstrainedBC {
			c.MoveTo(tr.B[0], tr.B[1])
			c.LineTo(tr.C[0], tr.C[1])
			c.Stroke()
		}
		if tr.ConstrainedCA {
			c.MoveTo(tr.C[0], tr.C[1])
			c.LineTo(tr.A[0], tr.A[1])
			c.Stroke()
		}
	}

	c.SetRGB(0.1, 0.1, 0.6)
	labeled := make(map[int32]bool)
	drawLabel := func(idx int32, wx, wy float64) {
		if labeled[idx] {
			return
		}
		labeled[idx] = true
		// Text drawn under the flipped/scaled world transform would come
		// out mirrored and oversized, so project to device space first and
		// draw it back under an identity transform.
		dx, dy := c.TransformPoint(wx, wy)
		c.Push()
		c.Identity()
		c.DrawStringAnchored(Label(idx), dx, dy-4, 0.5, 1)
		c.Pop()
	}
	for _, tr := range triangles {
		drawLabel(tr.AIndex, tr.A[0], tr.A[1])
		drawLabel(tr.BIndex, tr.B[0], tr.B[1])
		drawLabel(tr.CIndex, tr.C[0], tr.C[1])
	}

	if err := c.SavePNG(path); err != nil {
		return err
	}
	return imgcat.CatFile(path, os.Stdout)
}
