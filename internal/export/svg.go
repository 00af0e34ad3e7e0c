package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/ballsim/internal/dynamo"
)

type point struct{ X, Y float64 }

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(p point) {
	b.minX = min(b.minX, p.X)
	b.maxX = max(b.maxX, p.X)
	b.minY = min(b.minY, p.Y)
	b.maxY = max(b.maxY, p.Y)
}

// TrajectoryToSVG draws height over time as an SVG path. When exact is
// non-empty it is drawn as a dashed second path over the same time points.
// Fewer than two states write nothing.
func TrajectoryToSVG(w io.Writer, tr dynamo.Trajectory, exact []float64, width, height int) error {
	if len(tr) < 2 {
		return nil
	}

	numeric := make([]point, len(tr))
	for i, s := range tr {
		numeric[i] = point{s.Time, s.Height}
	}
	var reference []point
	for i := 0; i < len(exact) && i < len(tr); i++ {
		reference = append(reference, point{tr[i].Time, exact[i]})
	}

	b := bounds{minX: numeric[0].X, maxX: numeric[0].X, minY: 0, maxY: numeric[0].Y}
	for _, p := range numeric {
		b.include(p)
	}
	for _, p := range reference {
		b.include(p)
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1

	project := func(p point) (float64, float64) {
		x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
		y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	_, groundY := project(point{0, 0})
	fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#8b5a2b" stroke-width="1"/>
`, groundY, width, groundY)

	if len(reference) >= 2 {
		writePath(&sb, reference, project, `stroke="#3399ff" stroke-dasharray="4 3"`)
	}
	writePath(&sb, numeric, project, `stroke="#00ff00"`)

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writePath(sb *strings.Builder, pts []point, project func(point) (float64, float64), attrs string) {
	fmt.Fprintf(sb, `<path fill="none" %s stroke-width="1.5" d="M`, attrs)
	for i, p := range pts {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}
