package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/dynadraw/internal/control"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/experiment"
)

const (
	sliderRows      = 2
	statusRows      = 1
	historyCapacity = 120
	sparkWidth      = 24

	// DefaultScale is how many raster pixels one braille dot covers.
	DefaultScale = 2
)

type TickMsg time.Time

type Options struct {
	Theme  string
	Scale  int
	Logger *slog.Logger
}

// Model is the terminal front end. Braille dots stand in for raster pixels
// and the two top rows double as the slider strips.
type Model struct {
	exp        *experiment.Experiment
	canvas     *Canvas
	theme      Theme
	scale      int
	fps        int
	cols, rows int
	speeds     []float64
	err        error
	logger     *slog.Logger
}

func NewModel(exp *experiment.Experiment, opts Options) Model {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		exp:    exp,
		canvas: NewCanvas(0, 0),
		theme:  GetTheme(opts.Theme),
		scale:  scale,
		fps:    exp.Config().FPS,
		speeds: make([]float64, 0, historyCapacity),
		logger: logger,
	}
	controls := exp.Controls()
	controls.SliderHeight = float64(m.cellH())
	controls.Tolerance = float64(3 * m.cellW())
	return m
}

func (m Model) cellW() int { return 2 * m.scale }
func (m Model) cellH() int { return 4 * m.scale }

// Err is the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) Experiment() *experiment.Experiment { return m.exp }

// Canvas is the braille view of the raster as of the last frame.
func (m Model) Canvas() *Canvas { return m.canvas }

// Pixel maps a terminal cell to the raster pixel under its center.
func (m Model) Pixel(col, row int) dynamo.Vec2 {
	return dynamo.V(
		(float64(col)+0.5)*float64(m.cellW()),
		(float64(row)+0.5)*float64(m.cellH()),
	)
}

func (m Model) tick() tea.Cmd {
	fps := m.fps
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			m.exp.Key(msg.Runes[0])
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		at := m.Pixel(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.exp.Press(at)
			}
		case tea.MouseActionRelease:
			m.exp.Release(at)
		case tea.MouseActionMotion:
			m.exp.Move(at)
		}

	case TickMsg:
		f, err := m.exp.Frame()
		if err != nil {
			m.err = err
			m.logger.Error("frame failed", "err", err)
			return m, tea.Quit
		}
		m.speeds = append(m.speeds, f.Pen.Speed())
		if len(m.speeds) > historyCapacity {
			m.speeds = m.speeds[len(m.speeds)-historyCapacity:]
		}
		m.canvas.Sample(m.exp.Canvas().Image(), m.exp.Simulator().Background())
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	h := max(rows-statusRows, sliderRows+1)
	m.canvas.Resize(cols, h)
	m.exp.Resize(max(cols, 1)*m.cellW(), h*m.cellH())
	m.logger.Debug("terminal resized", "cols", cols, "rows", rows)
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	if m.cols == 0 {
		return "starting..."
	}

	params := m.exp.Params()
	var b strings.Builder
	b.WriteString(m.sliderRow(control.StiffnessSlider, params.Stiffness))
	b.WriteByte('\n')
	b.WriteString(m.sliderRow(control.DampingSlider, params.Damping))
	b.WriteByte('\n')
	for i := sliderRows; i < m.canvas.Height; i++ {
		b.WriteString(m.canvas.Row(i))
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	return b.String()
}

// sliderRow draws a track across the full width with the knob at the value
// and the label beside it.
func (m Model) sliderRow(sl control.Slider, v float64) string {
	if m.cols <= 0 {
		return ""
	}
	track := lipgloss.NewStyle().Foreground(m.theme.Track)
	knob := lipgloss.NewStyle().Foreground(m.theme.Knob).Bold(true)
	label := lipgloss.NewStyle().Foreground(m.theme.Label)

	k := int(m.exp.Controls().KnobX(sl, v)) / m.cellW()
	k = max(0, min(m.cols-1, k))
	text := " " + sl.Label + " " + control.ValueText(sl, v) + " "
	n := len([]rune(text))

	switch {
	case k+1+n <= m.cols:
		return track.Render(strings.Repeat("─", k)) +
			knob.Render("●") +
			label.Render(text) +
			track.Render(strings.Repeat("─", m.cols-k-1-n))
	case k-n >= 0:
		return track.Render(strings.Repeat("─", k-n)) +
			label.Render(text) +
			knob.Render("●") +
			track.Render(strings.Repeat("─", m.cols-k-1))
	default:
		return track.Render(strings.Repeat("─", k)) +
			knob.Render("●") +
			track.Render(strings.Repeat("─", m.cols-k-1))
	}
}

func (m Model) statusLine() string {
	metrics := m.exp.Metrics()
	swatch := lipgloss.NewStyle().Foreground(hexOf(m.exp.Simulator().State().Color)).Render("●")
	parts := []string{
		GradientText("dynadraw", m.theme.Title[0], m.theme.Title[1]),
		swatch,
		MetricLabel.Render("speed ") + MetricValue.Render(fmt.Sprintf("%5.2f", last(m.speeds))),
		MetricLabel.Render("ink ") + MetricValue.Render(fmt.Sprintf("%.0f", metrics["ink_frames"])),
		SparklineChart(m.speeds, sparkWidth),
		KeyHint.Render("1-7 color  click clears  q quit"),
	}
	return strings.Join(parts, "  ")
}

func last(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}

// Run starts the terminal front end with mouse motion reporting and blocks
// until the user quits or ctx is done.
func Run(ctx context.Context, exp *experiment.Experiment, opts Options) error {
	p := tea.NewProgram(NewModel(exp, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
