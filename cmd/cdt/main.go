package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/logrusorgru/aurora"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/archhalf/cdt"
	"github.com/archhalf/cdt/dbg"
)

// Demo CLI: reads points and constraint loops either from stdin in the
// teacher's newline-separated "x y" format (blank line between polygons) or
// from an SVG document's polygon/polyline elements, runs Triangulate, and
// reports the result. Polygons read this way become constraint loops, not
// just bare points: each consecutive pair of points in a loop becomes a
// hole-boundary constraint edge.
var (
	app             = kingpin.New("cdt", "2D constrained Delaunay triangulator with Ruppert refinement")
	refine          = app.Flag("refine", "enable Ruppert mesh refinement").Bool()
	minAngle        = app.Flag("min-angle", "minimum triangle angle in degrees when refining").Default("20").Float64()
	maxArea         = app.Flag("max-area", "maximum triangle area when refining").Default("1").Float64()
	autoHoles       = app.Flag("auto-holes", "classify inside/outside by winding parity automatically").Bool()
	restoreBoundary = app.Flag("restore-boundary", "trim triangles outside the outer constraint loop").Bool()
	svgPath         = app.Flag("svg", "read polygons from an SVG file instead of stdin").String()
	preview         = app.Flag("preview", "render the resulting mesh and preview it in the terminal").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	var polygons [][][2]float64
	if *svgPath != "" {
		f, err := os.Open(*svgPath)
		if err != nil {
			fmt.Println(aurora.Red(fmt.Sprintf("could not open %s: %v", *svgPath, err)))
			os.Exit(1)
		}
		defer f.Close()
		polygons = readSVGPolygons(f)
	} else {
		polygons = readStdinPolygons(os.Stdin)
	}

	in, err := buildInput(polygons)
	if err != nil {
		fmt.Println(aurora.Red(err.Error()))
		os.Exit(1)
	}

	settings := cdt.DefaultSettings()
	settings.ValidateInput = true
	settings.AutoHolesAndBoundary = *autoHoles
	settings.RestoreBoundary = *restoreBoundary
	settings.RefineMesh = *refine
	settings.Refinement = cdt.RefinementSettings{
		Area:  *maxArea,
		Angle: *minAngle * (3.141592653589793 / 180),
	}

	out := cdt.TriangulateFloat64(in, settings)
	if !out.Status.IsOk() {
		fmt.Println(aurora.Red(out.Status.Error()))
		os.Exit(1)
	}
	fmt.Println(aurora.Green(fmt.Sprintf("ok: %d positions, %d triangles", len(out.Positions), len(out.Triangles)/3)))

	if *preview {
		triangles := make([]dbg.Triangle2D, 0, len(out.Triangles)/3)
		for t := 0; t < len(out.Triangles)/3; t++ {
			h := t * 3
			a := out.Positions[out.Triangles[h]]
			b := out.Positions[out.Triangles[h+1]]
			c := out.Positions[out.Triangles[h+2]]
			triangles = append(triangles, dbg.Triangle2D{
				A:             [2]float64{a.X, a.Y},
				B:             [2]float64{b.X, b.Y},
				C:             [2]float64{c.X, c.Y},
				AIndex:        out.Triangles[h],
				BIndex:        out.Triangles[h+1],
				CIndex:        out.Triangles[h+2],
				ConstrainedAB: out.Constrained[h] != cdt.Unconstrained,
				ConstrainedBC: out.Constrained[h+1] != cdt.Unconstrained,
				ConstrainedCA: out.Constrained[h+2] != cdt.Unconstrained,
			})
		}
		if err := dbg.RenderMesh(triangles, 40, "/tmp/cdt_preview.png"); err != nil {
			fmt.Println(aurora.Red(err.Error()))
		}
	}
}

// buildInput flattens the read polygons into Input.Positions plus one
// ConstraintEdges pair per consecutive loop edge, deduplicating shared
// vertices by exact coordinate match so adjacent polygons (an outer loop
// and a hole) can share endpoints.
func buildInput(polygons [][][2]float64) (cdt.Input[float64], error) {
	var in cdt.Input[float64]
	index := make(map[[2]float64]int)

	vertex := func(p [2]float64) int {
		if i, ok := index[p]; ok {
			return i
		}
		i := len(in.Positions)
		index[p] = i
		in.Positions = append(in.Positions, cdt.Vec2[float64]{X: p[0], Y: p[1]})
		return i
	}

	for _, poly := range polygons {
		if len(poly) < 3 {
			continue
		}
		first := vertex(poly[0])
		prev := first
		for _, p := range poly[1:] {
			v := vertex(p)
			in.ConstraintEdges = append(in.ConstraintEdges, prev, v)
			prev = v
		}
		in.ConstraintEdges = append(in.ConstraintEdges, prev, first)
	}

	if len(in.Positions) < 3 {
		return in, fmt.Errorf("need at least 3 points, got %d", len(in.Positions))
	}
	return in, nil
}

func readStdinPolygons(in *os.File) [][][2]float64 {
	var polygons [][][2]float64
	scanner := bufio.NewScanner(in)
	var points [][2]float64
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, points)
				points = nil
			}
			continue
		}
		points = append(points, parsePoint(line))
	}
	if len(points) > 0 {
		polygons = append(polygons, points)
	}
	return polygons
}

func parsePoint(line string) [2]float64 {
	parts := strings.Fields(line)
	x, _ := strconv.ParseFloat(parts[0], 64)
	y, _ := strconv.ParseFloat(parts[1], 64)
	return [2]float64{x, y}
}

// readSVGPolygons extracts every polygon/polyline element's points
// attribute as a loop of vertices.
func readSVGPolygons(f *os.File) [][][2]float64 {
	root, err := svgparser.Parse(f, true)
	if err != nil {
		fmt.Println(aurora.Red(fmt.Sprintf("failed to parse svg: %v", err)))
		os.Exit(1)
	}

	var polygons [][][2]float64
	for _, tag := range []string{"polygon", "polyline"} {
		for _, el := range root.FindAll(tag) {
			pointString := el.Attributes["points"]
			var points [][2]float64
			for _, pair := range strings.Fields(pointString) {
				coords := strings.Split(strings.TrimSuffix(pair, ","), ",")
				if len(coords) != 2 {
					continue
				}
				x, errX := strconv.ParseFloat(coords[0], 64)
				y, errY := strconv.ParseFloat(coords[1], 64)
				if errX != nil || errY != nil {
					continue
				}
				points = append(points, [2]float64{x, y})
			}
			if len(points) >= 3 {
				polygons = append(polygons, points)
			}
		}
	}
	return polygons
}
