// Package memory provides an in-memory, scriptable implementation of
// the accessibility port. Tests script which windows become visible
// after how many queries and inspect the exact sequence of dispatched
// actions, standing in for a live host application.
package memory

import (
	"context"
	"sync"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

// Ensure the fake satisfies the driven ports.
var (
	_ driven.Accessibility = (*Backend)(nil)
	_ driven.Element       = (*Element)(nil)
)

// Element is a scripted UI element.
type Element struct {
	mu         sync.Mutex
	attrs      map[domain.AttrName]domain.AttrValue
	buttons    []*Element
	textFields []*Element

	// PressCount is how many times Press was dispatched.
	PressCount int

	// OnPress, when set, runs after a press is recorded. Tests use it
	// to script reactions, e.g. a press making an alert appear.
	OnPress func()
}

// NewElement creates an element with the given attributes.
func NewElement(attrs map[domain.AttrName]domain.AttrValue) *Element {
	if attrs == nil {
		attrs = make(map[domain.AttrName]domain.AttrValue)
	}
	return &Element{attrs: attrs}
}

// NewWindow creates a window element with a title attribute.
func NewWindow(title string) *Element {
	return NewElement(map[domain.AttrName]domain.AttrValue{
		domain.AttrRole:  domain.StringAttr("AXWindow"),
		domain.AttrTitle: domain.StringAttr(title),
	})
}

// NewAlert creates a window element identified by description only,
// the way the host exposes its tempo prompt.
func NewAlert(description string) *Element {
	return NewElement(map[domain.AttrName]domain.AttrValue{
		domain.AttrRole:        domain.StringAttr("AXWindow"),
		domain.AttrDescription: domain.StringAttr(description),
	})
}

// NewButton creates a button element with a title attribute.
func NewButton(title string) *Element {
	return NewElement(map[domain.AttrName]domain.AttrValue{
		domain.AttrRole:  domain.StringAttr("AXButton"),
		domain.AttrTitle: domain.StringAttr(title),
	})
}

// AddButton attaches a button to the element's subtree.
func (e *Element) AddButton(b *Element) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buttons = append(e.buttons, b)
	return e
}

// AddTextField attaches a text field to the element's subtree.
func (e *Element) AddTextField(f *Element) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.textFields = append(e.textFields, f)
	return e
}

// SetAttr sets an attribute on the element.
func (e *Element) SetAttr(name domain.AttrName, v domain.AttrValue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = v
}

// Attr reads one attribute.
func (e *Element) Attr(name domain.AttrName) (domain.AttrValue, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[name]
	return v, ok
}

// Press records the press and runs any scripted reaction.
func (e *Element) Press(_ context.Context) error {
	e.mu.Lock()
	e.PressCount++
	onPress := e.OnPress
	e.mu.Unlock()
	if onPress != nil {
		onPress()
	}
	return nil
}

// Chord records one SendKeyChord dispatch.
type Chord struct {
	Key  string
	Mods []domain.Modifier
}

// scriptedWindow defers a window's visibility until the backend has
// served a number of window queries, simulating a dialog that appears
// asynchronously after a menu action.
type scriptedWindow struct {
	el           *Element
	visibleAfter int
}

// Backend is the scripted accessibility backend.
type Backend struct {
	mu            sync.Mutex
	windows       []scriptedWindow
	windowQueries int

	// Recorded action dispatches, in order.
	Activations int
	Opened      []string
	Menus       [][]string
	Keys        []string
	Chords      []Chord
	Clicks      []domain.Point

	// Scripted failures. Nil means the dispatch succeeds.
	ActivateErr error
	MenuErr     error
	OpenErr     error
	WindowsErr  error
}

// New creates an empty scripted backend.
func New() *Backend {
	return &Backend{}
}

// AddWindow makes a window immediately visible.
func (b *Backend) AddWindow(el *Element) {
	b.AddWindowAfter(el, 0)
}

// AddWindowAfter makes a window visible once the backend has served
// afterQueries window snapshots.
func (b *Backend) AddWindowAfter(el *Element, afterQueries int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows = append(b.windows, scriptedWindow{el: el, visibleAfter: b.windowQueries + afterQueries})
}

// RemoveWindow makes a window disappear.
func (b *Backend) RemoveWindow(el *Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, w := range b.windows {
		if w.el == el {
			b.windows = append(b.windows[:i], b.windows[i+1:]...)
			return
		}
	}
}

// WindowQueries returns how many window snapshots were served.
func (b *Backend) WindowQueries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.windowQueries
}

// Activate records an activation request.
func (b *Backend) Activate(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ActivateErr != nil {
		return b.ActivateErr
	}
	b.Activations++
	return nil
}

// OpenProject records an open request.
func (b *Backend) OpenProject(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OpenErr != nil {
		return b.OpenErr
	}
	b.Opened = append(b.Opened, path)
	return nil
}

// InvokeMenu records a menu invocation.
func (b *Backend) InvokeMenu(_ context.Context, path ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.MenuErr != nil {
		return b.MenuErr
	}
	b.Menus = append(b.Menus, append([]string(nil), path...))
	return nil
}

// Windows serves a snapshot of currently visible windows.
func (b *Backend) Windows(_ context.Context) ([]driven.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WindowsErr != nil {
		return nil, b.WindowsErr
	}
	b.windowQueries++
	var visible []driven.Element
	for _, w := range b.windows {
		if b.windowQueries > w.visibleAfter {
			visible = append(visible, w.el)
		}
	}
	return visible, nil
}

// Buttons serves the buttons in scope's subtree.
func (b *Backend) Buttons(_ context.Context, scope driven.Element) ([]driven.Element, error) {
	el, ok := scope.(*Element)
	if !ok {
		return nil, nil
	}
	el.mu.Lock()
	defer el.mu.Unlock()
	out := make([]driven.Element, 0, len(el.buttons))
	for _, btn := range el.buttons {
		out = append(out, btn)
	}
	return out, nil
}

// TextFields serves the text fields in scope's subtree.
func (b *Backend) TextFields(_ context.Context, scope driven.Element) ([]driven.Element, error) {
	el, ok := scope.(*Element)
	if !ok {
		return nil, nil
	}
	el.mu.Lock()
	defer el.mu.Unlock()
	out := make([]driven.Element, 0, len(el.textFields))
	for _, f := range el.textFields {
		out = append(out, f)
	}
	return out, nil
}

// SendKey records a single key event.
func (b *Backend) SendKey(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Keys = append(b.Keys, key)
	return nil
}

// SendKeyChord records a modified key event.
func (b *Backend) SendKeyChord(_ context.Context, key string, mods []domain.Modifier) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Chords = append(b.Chords, Chord{Key: key, Mods: append([]domain.Modifier(nil), mods...)})
	return nil
}

// Click records a click at a coordinate.
func (b *Backend) Click(_ context.Context, p domain.Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Clicks = append(b.Clicks, p)
	return nil
}
