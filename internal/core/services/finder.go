package services

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// Finder is the element finder: a snapshot query over the accessibility
// port. It never blocks and never retries. An empty result means no
// match, not an error; backend failures (host quit mid-query) are
// logged at debug level and likewise report no matches, so callers see
// the two-valued outcome the poller expects.
type Finder struct {
	ax driven.Accessibility
}

// NewFinder creates a finder over the given backend.
func NewFinder(ax driven.Accessibility) *Finder {
	return &Finder{ax: ax}
}

// Windows returns the host's top-level windows matching pred,
// in the host's native enumeration order.
func (f *Finder) Windows(ctx context.Context, pred domain.Predicate) []driven.Element {
	wins, err := f.ax.Windows(ctx)
	if err != nil {
		logger.Debug("window query failed: %v", err)
		return nil
	}
	return filterElements(wins, pred)
}

// Buttons returns the buttons in scope's subtree matching pred.
func (f *Finder) Buttons(ctx context.Context, scope driven.Element, pred domain.Predicate) []driven.Element {
	btns, err := f.ax.Buttons(ctx, scope)
	if err != nil {
		logger.Debug("button query failed: %v", err)
		return nil
	}
	return filterElements(btns, pred)
}

// TextFields returns the text fields in scope's subtree matching pred.
func (f *Finder) TextFields(ctx context.Context, scope driven.Element, pred domain.Predicate) []driven.Element {
	fields, err := f.ax.TextFields(ctx, scope)
	if err != nil {
		logger.Debug("text field query failed: %v", err)
		return nil
	}
	return filterElements(fields, pred)
}

func filterElements(els []driven.Element, pred domain.Predicate) []driven.Element {
	var matched []driven.Element
	for _, el := range els {
		if pred(el) {
			matched = append(matched, el)
		}
	}
	return matched
}
