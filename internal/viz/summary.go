package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Summary renders run parameters, outcome and metrics as a panel.
func Summary(title string, p dynamo.Params, res *dynamo.Result) string {
	var rows []string
	row := func(label, value string) {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, MetricLabel.Render(label), MetricValue.Render(value)))
	}

	row("initial height", fmt.Sprintf("%.3f m", p.InitialHeight))
	row("initial speed", fmt.Sprintf("%.3f m/s", p.InitialVelocity))
	row("acceleration", fmt.Sprintf("%.3f m/s²", p.Acceleration))
	row("time step", fmt.Sprintf("%g s", p.TimeStep))
	row("duration", fmt.Sprintf("%g s", p.Duration))
	row("states", fmt.Sprintf("%d / %d", len(res.Trajectory), p.NumSteps()+1))

	outcome := "duration elapsed"
	if res.Grounded {
		outcome = "reached the ground"
	}
	row("outcome", outcome)

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		row(name, fmt.Sprintf("%.6f", res.Metrics[name]))
	}

	if last, ok := res.Trajectory.Last(); ok && !last.IsFinite() {
		rows = append(rows, Warning.Render("non-finite state in trajectory"))
	}

	rows = append(rows, "", Sparkline(res.Trajectory.Heights(), 40))

	return Panel.Render(Title.Render(title) + "\n\n" + strings.Join(rows, "\n"))
}
