package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/guptarohit/asciigraph"

	"github.com/gekko3d/pxhost"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue, asciigraph.Magenta, asciigraph.Cyan,
}

// heightTrace samples the height of every non-static actor over time.
type heightTrace struct {
	index   map[string]int
	labels  []string
	heights [][]float64
	last    []pxhost.ActorState
	samples int
}

func newHeightTrace(actors []*pxhost.Actor) *heightTrace {
	t := &heightTrace{index: make(map[string]int)}
	for _, a := range actors {
		if a.Kind() == pxhost.ActorStatic {
			continue
		}
		t.index[a.ID()] = len(t.labels)
		t.labels = append(t.labels, fmt.Sprintf("%s %s", a.Kind(), a.Material()))
		t.heights = append(t.heights, nil)
	}
	t.last = make([]pxhost.ActorState, len(t.labels))
	return t
}

func (t *heightTrace) record(states []pxhost.ActorState) {
	for _, s := range states {
		i, ok := t.index[s.ID]
		if !ok {
			continue
		}
		t.heights[i] = append(t.heights[i], float64(s.Pose.Position.Y()))
		t.last[i] = s
	}
	t.samples++
}

func (t *heightTrace) plot(width, height int) string {
	var series [][]float64
	var legends []string
	var colors []asciigraph.AnsiColor
	for i, h := range t.heights {
		if len(h) == 0 {
			continue
		}
		series = append(series, h)
		legends = append(legends, t.labels[i])
		colors = append(colors, seriesColors[i%len(seriesColors)])
	}
	if len(series) == 0 {
		return "no samples"
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("height (m)"),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

func renderSummary(t *heightTrace, st pxhost.Stats, hz uint32) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("pxhost run"))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("frequency", fmt.Sprintf("%d Hz", hz))
	row("ticks", fmt.Sprintf("%d", st.Ticks))
	row("overruns", fmt.Sprintf("%d", st.Overruns))
	row("last step", st.LastStep.String())
	row("actors", fmt.Sprintf("%d", st.Actors))
	row("samples", fmt.Sprintf("%d", t.samples))
	b.WriteString("\n")

	for i, label := range t.labels {
		s := t.last[i]
		color := seriesColors[i%len(seriesColors)]
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("%d", color))).Render("■")
		state := "awake"
		if s.Sleeping {
			state = "asleep"
		}
		fmt.Fprintf(&b, "%s %s  y=%.2f  |v|=%.2f  %s\n",
			marker, labelStyle.Render(label), s.Pose.Position.Y(), s.LinearVelocity.Len(), state)
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderInertia(shape string, mass float32, tensor mgl32.Vec3) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s, mass %g kg", shape, mass)))
	b.WriteString("\n")
	for i, axis := range []string{"Ixx", "Iyy", "Izz"} {
		b.WriteString(labelStyle.Render(axis))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.6g kg·m²", tensor[i])))
		if i < 2 {
			b.WriteString("\n")
		}
	}
	return panelStyle.Render(b.String())
}

func renderMaterials(catalog map[string]pxhost.MaterialProperties) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("materials"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("name"))
	b.WriteString(labelStyle.Render("static"))
	b.WriteString(labelStyle.Render("dynamic"))
	b.WriteString(labelStyle.Render("restitution"))
	for _, id := range pxhost.MaterialIDs() {
		p, ok := catalog[id.String()]
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(id.String()))
		b.WriteString(valueStyle.Width(14).Render(fmt.Sprintf("%.2f", p.StaticFriction)))
		b.WriteString(valueStyle.Width(14).Render(fmt.Sprintf("%.2f", p.DynamicFriction)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f", p.Restitution)))
	}
	return panelStyle.Render(b.String())
}
