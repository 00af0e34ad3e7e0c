package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	replayRows  = 20
	replayWidth = 24
)

type TickMsg time.Time

// Replay animates a finished trajectory. It never integrates: every frame
// is a state the simulator accepted.
type Replay struct {
	title    string
	traj     dynamo.Trajectory
	ceiling  float64
	frame    int
	running  bool
	interval time.Duration
}

// NewReplay plays one state per interval. A non-positive interval falls
// back to the run's own time step scale.
func NewReplay(title string, traj dynamo.Trajectory, interval time.Duration) Replay {
	ceiling := 0.0
	for _, s := range traj {
		if !math.IsNaN(s.Height) && !math.IsInf(s.Height, 0) {
			ceiling = math.Max(ceiling, s.Height)
		}
	}
	if ceiling == 0 {
		ceiling = 1
	}
	if interval <= 0 {
		interval = time.Second / 30
	}

	return Replay{
		title:    title,
		traj:     traj,
		ceiling:  ceiling,
		running:  true,
		interval: interval,
	}
}

func (m Replay) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return m.tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.frame = 0
			m.running = true
		case "[":
			m.running = false
			m.frame = max(m.frame-1, 0)
		case "]":
			m.running = false
			m.frame = min(m.frame+1, m.lastFrame())
		}
	case TickMsg:
		if m.running {
			if m.frame < m.lastFrame() {
				m.frame++
			} else {
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Replay) lastFrame() int {
	return max(len(m.traj)-1, 0)
}

// Frame is the index of the displayed state.
func (m Replay) Frame() int { return m.frame }

// Running reports whether the replay advances on ticks.
func (m Replay) Running() bool { return m.running }

// row maps a height to a screen row, 0 at the top.
func (m Replay) row(h float64) int {
	if math.IsNaN(h) {
		return replayRows - 1
	}
	r := replayRows - 1 - int(math.Round(h/m.ceiling*float64(replayRows-1)))
	return max(0, min(r, replayRows-1))
}

func (m Replay) View() string {
	if len(m.traj) == 0 {
		return Subtle.Render("empty trajectory") + "\n"
	}

	s := m.traj[m.frame]
	ballRow := m.row(s.Height)

	var sb strings.Builder
	sb.WriteString(Title.Render(m.title) + "\n\n")

	for r := 0; r < replayRows; r++ {
		label := "        "
		if r == 0 {
			label = fmt.Sprintf("%6.1fm ", m.ceiling)
		}
		line := strings.Repeat(" ", replayWidth/2)
		if r == ballRow {
			line += Ball.Render("●")
		}
		sb.WriteString(Subtle.Render(label) + "│" + line + "\n")
	}
	sb.WriteString(Subtle.Render("   0.0m ") + Ground.Render("└"+strings.Repeat("▀", replayWidth)) + "\n\n")

	status := StatusRunning.Render("▶ playing")
	if !m.running {
		status = StatusPaused.Render("⏸ paused")
	}

	fmt.Fprintf(&sb, "%s  %s %d/%d\n", status, ProgressBar(float64(m.frame)/float64(max(m.lastFrame(), 1)), 30), m.frame, m.lastFrame())
	fmt.Fprintf(&sb, "%s %s\n", MetricLabel.Render("time"), MetricValue.Render(fmt.Sprintf("%.3f s", s.Time)))
	fmt.Fprintf(&sb, "%s %s\n", MetricLabel.Render("height"), MetricValue.Render(fmt.Sprintf("%.3f m", s.Height)))
	fmt.Fprintf(&sb, "%s %s\n", MetricLabel.Render("velocity"), MetricValue.Render(fmt.Sprintf("%.3f m/s", s.Velocity)))
	sb.WriteString("\n" + Subtle.Render("space pause • r restart • [ ] step • q quit") + "\n")

	return sb.String()
}
