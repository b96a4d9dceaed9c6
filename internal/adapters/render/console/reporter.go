package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/emergent-chefs/internal/adapters/render/status"
	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

const (
	separatorWidth   = 80
	introIngredients = 5
	timestampLayout  = "15:04:05"
)

type Options struct {
	// Plain disables colors and prints the working line as text.
	Plain bool
	// ShowFrequency adds shorthand frequencies to periodic status blocks.
	// The summary always shows them.
	ShowFrequency bool
}

// Reporter prints the run to a terminal-like writer.
type Reporter struct {
	out    io.Writer
	clock  ports.Clock
	opts   Options
	render func(domain.Snapshot, status.RenderOptions) (string, error)

	mu       sync.Mutex
	renderer *lipgloss.Renderer
}

var _ ports.Reporter = (*Reporter)(nil)

func NewReporter(out io.Writer, clock ports.Clock, opts Options) *Reporter {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	renderer := lipgloss.NewRenderer(out)
	if opts.Plain {
		renderer = lipgloss.NewRenderer(io.Discard)
	}

	return &Reporter{
		out:      out,
		clock:    clock,
		opts:     opts,
		render:   status.Render,
		renderer: renderer,
	}
}

func (r *Reporter) Intro(intro ports.Intro) {
	r.mu.Lock()
	defer r.mu.Unlock()

	title := r.renderer.NewStyle().Bold(true)
	r.println(strings.Repeat("=", separatorWidth))
	r.println(title.Render("🍳 EMERGENT LANGUAGE CHEF COLLABORATION 🍳"))
	r.println(strings.Repeat("=", separatorWidth))

	r.println("\nMeet the chefs:")
	for _, agent := range intro.Agents {
		r.println(r.agentStyle(agent.Color).Render(agent.Name) + " - " + agent.Specialty)
		r.println(fmt.Sprintf("  Key ingredients: %s...", agent.KeyIngredients(introIngredients)))
	}

	r.println("\nPress Ctrl+C to stop at any time")
	r.println(strings.Repeat("=", separatorWidth))

	if intro.Challenge != "" {
		r.println("\n" + title.Render("🎯 THE GRAND CHALLENGE:"))
		r.println(intro.Challenge)
		r.println(strings.Repeat("-", separatorWidth))
	}
}

func (r *Reporter) TurnStarted(turn domain.Turn, agent domain.Agent) {
	if !r.opts.Plain {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.println(fmt.Sprintf("[%s working on %s...]", agent.Name, turn.Course))
}

func (r *Reporter) TurnCompleted(report ports.TurnReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	style := r.agentStyle(report.Agent.Color)
	if report.Fallback {
		style = style.Faint(true)
	}

	line := fmt.Sprintf("[%s] %s (Course %d): %s",
		r.clock.Now().Format(timestampLayout),
		report.Agent.Name,
		report.Turn.CourseNumber,
		report.Response,
	)
	r.println(style.Render(line))
}

func (r *Reporter) StatusReport(snapshot domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.println(strings.Repeat("-", separatorWidth/2))
	r.printStatus(snapshot, r.opts.ShowFrequency)
}

func (r *Reporter) Summary(snapshot domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.println("\n\n" + strings.Repeat("=", separatorWidth))
	r.println(fmt.Sprintf("Collaboration ended after %d exchanges", snapshot.CompletedTurns))
	if snapshot.Failures > 0 {
		r.println(fmt.Sprintf("%d exchanges fell back to a placeholder response", snapshot.Failures))
	}
	r.printStatus(snapshot, true)
	r.println(strings.Repeat("=", separatorWidth))
	r.println("\n👨‍🍳 Thanks for watching the chefs collaborate! 👨‍🍳")
}

func (r *Reporter) printStatus(snapshot domain.Snapshot, showFrequency bool) {
	block, err := r.render(snapshot, status.RenderOptions{
		Plain:         r.opts.Plain,
		ShowFrequency: showFrequency,
		Renderer:      r.renderer,
	})
	if err != nil {
		r.println(fmt.Sprintf("status unavailable: %v", err))
		return
	}

	r.println("")
	r.println(block)
	r.println("")
}

func (r *Reporter) agentStyle(color string) lipgloss.Style {
	style := r.renderer.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

func (r *Reporter) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
