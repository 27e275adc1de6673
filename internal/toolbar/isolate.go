package toolbar

import (
	"errors"
	"fmt"

	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

// ErrRenderPanic wraps a panic recovered from a contributed unit.
var ErrRenderPanic = errors.New("toolbar: unit panicked")

// IsolationConfig controls what a contribution shows when its unit fails.
type IsolationConfig struct {
	// Noop renders nothing on failure. A nil *IsolationConfig behaves the same.
	Noop bool

	// Message replaces the text of the default error indicator.
	Message string

	// Fallback renders the replacement element. When nil and Noop is false,
	// a styled error indicator is shown.
	Fallback func(err error) string

	// OnError is called with the contribution id and the failure.
	OnError func(id string, err error)
}

// NoopIsolation renders nothing on failure.
var NoopIsolation = &IsolationConfig{Noop: true}

// Result is the outcome of producing one contributed element.
type Result struct {
	View     string
	Err      error
	FellBack bool
}

// Isolated is a contributed unit behind its own failure boundary.
// Its Render never returns an error.
type Isolated struct {
	id       string
	unit     Unit
	cfg      *IsolationConfig
	failures *Registry
}

// Isolate wraps unit so that an error or panic from it is replaced by the
// fallback described by cfg.
func Isolate(id string, unit Unit, cfg *IsolationConfig) *Isolated {
	return &Isolated{id: id, unit: unit, cfg: cfg}
}

// ID returns the contribution identifier.
func (i *Isolated) ID() string { return i.id }

// Unwrap returns the underlying unit.
func (i *Isolated) Unwrap() Unit { return i.unit }

// Render implements Unit.
func (i *Isolated) Render() (string, error) {
	return i.Produce().View, nil
}

// Produce renders the wrapped unit, substituting the fallback on failure.
func (i *Isolated) Produce() (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = i.fail(fmt.Errorf("%w: %v", ErrRenderPanic, r))
		}
	}()

	if i.unit == nil {
		return i.fail(ErrNilUnit)
	}
	view, err := i.unit.Render()
	if err != nil {
		return i.fail(err)
	}
	if i.failures != nil {
		i.failures.clearFailure(i.id)
	}
	return Result{View: view}
}

// fail logs err unless the registry the unit came from already saw the same
// error from this contribution. A unit failing on every render is logged
// once; the debug log overlay would otherwise re-render on its own log line
// forever.
func (i *Isolated) fail(err error) Result {
	if i.failures == nil || i.failures.noteFailure(i.id, err.Error()) {
		log.ErrorErr(log.CatToolbar, "Contribution failed to render", err, "id", i.id)
	}
	if i.cfg != nil && i.cfg.OnError != nil {
		i.notify(err)
	}
	return Result{View: i.fallback(err), Err: err, FellBack: true}
}

func (i *Isolated) notify(err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatToolbar, "OnError callback panicked", "id", i.id, "panic", r)
		}
	}()
	i.cfg.OnError(i.id, err)
}

func (i *Isolated) fallback(err error) (view string) {
	cfg := i.cfg
	if cfg == nil || cfg.Noop {
		return ""
	}
	if cfg.Fallback == nil {
		msg := cfg.Message
		if msg == "" {
			msg = i.id + " failed"
		}
		return styles.ToolbarErrorStyle.Render("✗ " + msg)
	}

	// A broken fallback degrades to rendering nothing.
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatToolbar, "Fallback panicked", "id", i.id, "panic", r)
			view = ""
		}
	}()
	return cfg.Fallback(err)
}
