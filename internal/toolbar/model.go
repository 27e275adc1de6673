package toolbar

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

// DefaultSeparator is placed between rendered toolbar elements.
const DefaultSeparator = " │ "

// zoneIDPrefix namespaces toolbar zones from the rest of the app.
const zoneIDPrefix = "toolbar:"

// ZoneID returns the bubblezone id used to mark a contribution's element.
func ZoneID(id string) string {
	return zoneIDPrefix + id
}

// ActivatedMsg is sent when a contribution without an Activator is clicked.
type ActivatedMsg struct {
	ID string
}

// Model renders the toolbar row. It is a Bubble Tea component: the host calls
// View with its own header elements on every render.
type Model struct {
	bar       Bar
	width     int
	separator string
	tracer    trace.Tracer
}

// Option configures a Model.
type Option func(*Model)

// WithSeparator sets the text placed between elements.
func WithSeparator(sep string) Option {
	return func(m *Model) { m.separator = sep }
}

// WithTracer records a span per render pass.
func WithTracer(t trace.Tracer) Option {
	return func(m *Model) {
		if t != nil {
			m.tracer = t
		}
	}
}

// New creates a toolbar model reading from registry.
func New(registry *Registry, opts ...Option) Model {
	m := Model{
		bar:       NewBar(registry),
		separator: DefaultSeparator,
		tracer:    noop.NewTracerProvider().Tracer("toolbar"),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// SetSize sets the width the toolbar is truncated to. Zero disables truncation.
func (m Model) SetSize(width int) Model {
	m.width = width
	return m
}

// Width returns the configured width.
func (m Model) Width() int {
	return m.width
}

// Registry returns the registry backing the toolbar.
func (m Model) Registry() *Registry {
	return m.bar.Registry()
}

// View merges contributions into children and renders the result as one line.
// A failure outside any contribution's own boundary, from a host element or
// from the merge itself, replaces the whole bar with an error line.
func (m Model) View(children []Unit) string {
	_, span := m.tracer.Start(context.Background(), "toolbar.render",
		trace.WithAttributes(
			attribute.Int("toolbar.host_elements", len(children)),
			attribute.Int("toolbar.contributions", m.contributionCount()),
		))
	defer span.End()

	line, err := m.renderLine(children, span)
	if err != nil {
		log.ErrorErr(log.CatToolbar, "Toolbar failed to render", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "toolbar render failed")
		return m.style().Render(styles.ToolbarErrorStyle.Render("Failed to render toolbar :("))
	}

	if inner := m.width - styles.ToolbarStyle.GetHorizontalFrameSize(); m.width > 0 && inner > 0 {
		line = ansi.Truncate(line, inner, "…")
	}
	return m.style().Render(line)
}

func (m Model) renderLine(children []Unit, span trace.Span) (line string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("toolbar: %v", r)
		}
	}()

	merged := m.bar.Render(children)
	parts := make([]string, 0, len(merged))
	for i, u := range merged {
		if iso, ok := u.(*Isolated); ok {
			res := iso.Produce()
			if res.FellBack {
				span.AddEvent("toolbar.fallback", trace.WithAttributes(
					attribute.String("toolbar.contribution", iso.ID()),
					attribute.String("error", res.Err.Error()),
				))
			}
			if res.View != "" {
				parts = append(parts, zone.Mark(ZoneID(iso.ID()), res.View))
			}
			continue
		}

		out, err := u.Render()
		if err != nil {
			return "", fmt.Errorf("host element %d: %w", i, err)
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	span.SetAttributes(attribute.Int("toolbar.rendered", len(parts)))

	return strings.Join(parts, styles.ToolbarSeparatorStyle.Render(m.separator)), nil
}

// HandleMouse activates the contribution under a left click, if any.
func (m Model) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	reg := m.Registry()
	if reg == nil {
		return nil
	}
	for _, e := range reg.Snapshot() {
		z := zone.Get(ZoneID(e.ID))
		if z == nil || !z.InBounds(msg) {
			continue
		}
		return Activate(e)
	}
	return nil
}

// Activate runs the entry's Activator, or reports an ActivatedMsg when the
// unit has none. A panicking Activator is logged and swallowed.
func Activate(e Entry) (cmd tea.Cmd) {
	act, ok := e.Contribution.Unit.(Activator)
	if !ok {
		return func() tea.Msg { return ActivatedMsg{ID: e.ID} }
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatToolbar, "Contribution activation panicked", "id", e.ID, "panic", r)
			cmd = nil
		}
	}()
	log.Debug(log.CatToolbar, "Activating contribution", "id", e.ID)
	return act.Activate()
}

func (m Model) contributionCount() int {
	if reg := m.Registry(); reg != nil {
		return reg.Len()
	}
	return 0
}

func (m Model) style() lipgloss.Style {
	s := styles.ToolbarStyle
	if m.width > 0 {
		s = s.Width(m.width)
	}
	return s
}
