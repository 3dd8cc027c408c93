package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/odeint/internal/algebra"
)

const (
	DefaultInterval = 25 * time.Millisecond
	canvasWidth     = 60
	canvasHeight    = 24
	sidebarWidth    = 34
)

// FrameSource is a precomputed chain of pivot and bobs.
type FrameSource interface {
	Len() int
	Times() []float64
	Frame(i int) (xs, ys [3]float64)
	MaxLength() float64
}

type energySource interface {
	Energies() algebra.Vector
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Animation is a Bubble Tea model replaying the frames of an ensemble.
type Animation struct {
	title    string
	sources  []FrameSource
	frames   int
	reach    float64
	energy   []float64
	theme    Theme
	interval time.Duration
	loop     bool

	frame         int
	paused        bool
	done          bool
	width, height int
}

type AnimationOption func(*Animation)

func WithInterval(d time.Duration) AnimationOption {
	return func(a *Animation) { a.interval = d }
}

func WithTheme(name string) AnimationOption {
	return func(a *Animation) { a.theme = GetTheme(name) }
}

// WithLoop restarts the replay after the last frame instead of stopping.
func WithLoop() AnimationOption {
	return func(a *Animation) { a.loop = true }
}

func WithCanvasSize(w, h int) AnimationOption {
	return func(a *Animation) { a.width, a.height = w, h }
}

func NewAnimation(title string, sources []FrameSource, opts ...AnimationOption) (Animation, error) {
	if len(sources) == 0 {
		return Animation{}, errors.New("viz: no pendula to animate")
	}

	a := Animation{
		title:    title,
		sources:  sources,
		frames:   sources[0].Len(),
		theme:    ThemeCyberpunk,
		interval: DefaultInterval,
		width:    canvasWidth,
		height:   canvasHeight,
	}
	for _, src := range sources {
		a.frames = min(a.frames, src.Len())
		a.reach = max(a.reach, src.MaxLength())
	}
	if a.frames == 0 {
		return Animation{}, errors.New("viz: pendula have no frames")
	}
	if es, ok := sources[0].(energySource); ok {
		a.energy = es.Energies()
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a, nil
}

func (a Animation) Init() tea.Cmd {
	return tick(a.interval)
}

func (a Animation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case " ":
			if a.done {
				a.restart()
			} else {
				a.paused = !a.paused
			}
		case "r":
			a.restart()
		case "t":
			a.theme = NextTheme(a.theme)
		case "left", "h":
			if a.paused && a.frame > 0 {
				a.frame--
				a.done = false
			}
		case "right", "l":
			if a.paused && a.frame < a.frames-1 {
				a.frame++
			}
		}
	case tea.WindowSizeMsg:
		a.width = max(20, msg.Width-sidebarWidth-4)
		a.height = max(10, msg.Height-4)
	case tickMsg:
		a.advance()
		return a, tick(a.interval)
	}
	return a, nil
}

func (a *Animation) advance() {
	if a.paused || a.done {
		return
	}
	if a.frame < a.frames-1 {
		a.frame++
		return
	}
	if a.loop {
		a.frame = 0
		return
	}
	a.done = true
}

func (a *Animation) restart() {
	a.frame = 0
	a.paused = false
	a.done = false
}

// Frame is the index of the frame on screen.
func (a Animation) Frame() int { return a.frame }

func (a Animation) Paused() bool { return a.paused }

func (a Animation) Done() bool { return a.done }

// Render draws frame i of every source, each in its own color.
func (a Animation) Render(i int) string {
	layers := make([]*Canvas, len(a.sources))
	for k, src := range a.sources {
		layers[k] = NewCanvas(a.width, a.height)
		xs, ys := src.Frame(i)
		NewViewport(layers[k], a.reach*1.05).Chain(xs[:], ys[:])
	}
	return composeLayers(layers, a.theme)
}

// composeLayers merges the dots of every layer; a cell takes the color of
// the last layer that lights it.
func composeLayers(layers []*Canvas, theme Theme) string {
	base := layers[0]
	var b strings.Builder
	for row := 0; row < base.Height; row++ {
		var run strings.Builder
		owner := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if owner < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.BobColor(owner)).Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < base.Width; col++ {
			cell, who := rune(brailleBlank), -1
			for k, layer := range layers {
				if dots := layer.Grid[row][col] &^ brailleBlank; dots != 0 {
					cell |= dots
					who = k
				}
			}
			if who != owner {
				flush()
				owner = who
			}
			run.WriteRune(cell)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func (a Animation) status() string {
	switch {
	case a.done:
		return "DONE"
	case a.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

func (a Animation) View() string {
	t := a.sources[0].Times()[a.frame]

	var s strings.Builder
	title := lipgloss.NewStyle().Foreground(a.theme.Title).Render(strings.ToUpper(a.title))
	s.WriteString(HeaderStyle.BorderForeground(a.theme.Muted).Render(title) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(a.theme.Accent).Render(a.status()) + "\n\n")

	s.WriteString(LabelStyle.Render("time") + ValueStyle.Render(fmt.Sprintf("%.1fs", t)) + "\n")
	s.WriteString(LabelStyle.Render("frame") + ValueStyle.Render(fmt.Sprintf("%d/%d", a.frame+1, a.frames)) + "\n")
	s.WriteString(LabelStyle.Render("pendula") + ValueStyle.Render(fmt.Sprintf("%d", len(a.sources))) + "\n")
	s.WriteString(ProgressBar(float64(a.frame)/float64(max(a.frames-1, 1)), sidebarWidth-6) + "\n")

	if len(a.energy) > 1 {
		s.WriteString("\n" + LabelStyle.Render("energy") + ValueStyle.Render(fmt.Sprintf("%.4f", a.energy[a.frame])) + "\n")
		s.WriteString(RenderSparkline(a.energy[:a.frame+1], sidebarWidth-6) + "\n")
	}

	s.WriteString(HelpStyle.Render("\nSP:Pause R:Restart T:Theme\n←→:Step Q:Quit"))

	canvas := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.Frame).
		Render(strings.TrimSuffix(a.Render(a.frame), "\n"))
	sidebar := lipgloss.NewStyle().Padding(0, 2).Width(sidebarWidth).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, sidebar)
}
