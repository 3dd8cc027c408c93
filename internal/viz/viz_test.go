package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odeint/internal/algebra"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("expected blank after unset, got %U", c.Grid[0][0])
	}

	// off-canvas writes are ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	c.Clear()
	if strings.TrimRight(c.String(), "\n") != "⠀⠀" {
		t.Errorf("unexpected canvas %q", c.String())
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)

	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal pixel (%d, %d) not set", i, i)
		}
	}
	if c.IsSet(7, 0) {
		t.Error("pixel off the line is set")
	}
}

func TestViewportProject(t *testing.T) {
	c := NewCanvas(11, 6) // 22 x 24 sub-pixels
	v := NewViewport(c, 2)

	cx, cy := v.Project(0, 0)
	if cx != 10 || cy != 11 {
		t.Errorf("origin at (%d, %d), expected (10, 11)", cx, cy)
	}

	x, y := v.Project(2, 0)
	if x != 21 || y != 11 {
		t.Errorf("right edge at (%d, %d), expected (21, 11)", x, y)
	}

	// y points up on screen
	_, top := v.Project(0, 1)
	if top >= cy {
		t.Errorf("positive y should map above the origin, got row %d", top)
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if Sparkline(nil, 3) != "───" {
		t.Error("expected placeholder for empty series")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 4); got != "██░░" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := ProgressBar(2, 3); got != "███" {
		t.Errorf("bar should clamp, got %q", got)
	}
}

func TestPlotSeries(t *testing.T) {
	out, err := PlotSeries([]float64{0, 1, 0, -1, 0}, "theta1", 5, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "theta1") {
		t.Errorf("caption missing from plot:\n%s", out)
	}

	if _, err := PlotSeries(nil, "empty", 5, 20); err == nil {
		t.Error("expected error for empty series")
	}
	if _, err := PlotMany([][]float64{{0, 1}, {1, 0}}, "two", 5, 20); err != nil {
		t.Errorf("PlotMany: %v", err)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("missing").Name != ThemeCyberpunk.Name {
		t.Error("unknown theme should fall back to cyberpunk")
	}
	if NextTheme(Themes[len(Themes)-1]).Name != Themes[0].Name {
		t.Error("NextTheme should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
	c := ThemeRetroGreen.BobColor(len(ThemeRetroGreen.Bobs))
	if c != ThemeRetroGreen.Bobs[0] {
		t.Errorf("bob colors should cycle, got %s", c)
	}
}

// swing is a two-frame chain hanging straight down, then to the right.
type swing struct{}

func (swing) Len() int           { return 3 }
func (swing) Times() []float64   { return []float64{0, 0.05, 0.1} }
func (swing) MaxLength() float64 { return 2 }
func (swing) Frame(i int) (xs, ys [3]float64) {
	if i == 0 {
		return [3]float64{0, 0, 0}, [3]float64{0, -1, -2}
	}
	return [3]float64{0, 1, 2}, [3]float64{0, 0, 0}
}
func (swing) Energies() algebra.Vector { return algebra.Vector{1, 1, 1} }

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a Animation, msg tea.Msg) (Animation, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(Animation)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return next, cmd
}

func TestNewAnimationErrors(t *testing.T) {
	if _, err := NewAnimation("empty", nil); err == nil {
		t.Error("expected error without sources")
	}
}

func TestAnimationPlayback(t *testing.T) {
	a, err := NewAnimation("rk4", []FrameSource{swing{}})
	if err != nil {
		t.Fatal(err)
	}

	a, cmd := update(t, a, tickMsg{})
	if a.Frame() != 1 || cmd == nil {
		t.Fatalf("tick should advance and reschedule, frame %d", a.Frame())
	}
	a, _ = update(t, a, tickMsg{})
	a, _ = update(t, a, tickMsg{})
	if a.Frame() != 2 || !a.Done() {
		t.Errorf("replay should stop on the last frame, frame %d done %v", a.Frame(), a.Done())
	}

	a, _ = update(t, a, key("r"))
	if a.Frame() != 0 || a.Done() {
		t.Errorf("restart should rewind, frame %d", a.Frame())
	}

	a, _ = update(t, a, key(" "))
	if !a.Paused() {
		t.Fatal("space should pause")
	}
	a, _ = update(t, a, tickMsg{})
	if a.Frame() != 0 {
		t.Error("paused replay should not advance")
	}
	a, _ = update(t, a, key("right"))
	a, _ = update(t, a, key("right"))
	a, _ = update(t, a, key("right"))
	if a.Frame() != 2 {
		t.Errorf("stepping should clamp at the last frame, got %d", a.Frame())
	}
	a, _ = update(t, a, key("left"))
	if a.Frame() != 1 {
		t.Errorf("expected frame 1 after stepping back, got %d", a.Frame())
	}

	_, cmd = update(t, a, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestAnimationLoop(t *testing.T) {
	a, err := NewAnimation("loop", []FrameSource{swing{}}, WithLoop())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		a, _ = update(t, a, tickMsg{})
	}
	if a.Frame() != 0 || a.Done() {
		t.Errorf("looping replay should wrap to frame 0, got %d", a.Frame())
	}
}

func TestAnimationRender(t *testing.T) {
	a, err := NewAnimation("rk4", []FrameSource{swing{}, swing{}}, WithCanvasSize(20, 10))
	if err != nil {
		t.Fatal(err)
	}

	frame := a.Render(0)
	if lines := strings.Count(frame, "\n"); lines != 10 {
		t.Errorf("expected 10 rows, got %d", lines)
	}
	if strings.Trim(frame, "⠀\n") == "" {
		t.Error("expected lit pixels")
	}

	view := a.View()
	if !strings.Contains(view, "RK4") || !strings.Contains(view, "RUNNING") {
		t.Errorf("view missing title or status:\n%s", view)
	}
}
