package services

import (
	"context"
	"fmt"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// Candidate is one alternative in a fallback chain. The exact label a
// host exposes for semantically equivalent actions varies by version
// and locale; candidates are tried in priority order and "element not
// found" is recoverable, not fatal.
type Candidate struct {
	// Name labels the candidate in session fallback logs.
	Name string

	// Locate snapshots the elements this candidate would act on.
	// It is re-invoked fresh per resolution; handles are never retained.
	Locate func(ctx context.Context) []driven.Element

	// Act performs the action on the first located element.
	// Nil means press the element.
	Act func(ctx context.Context, el driven.Element) error
}

// ResolveFirst tries candidates in order and performs exactly one
// action: the first candidate whose Locate finds an element wins, and
// its name is returned for the session's fallback log. If every
// candidate is absent, no action is performed and
// domain.ErrCandidatesExhausted is returned.
func ResolveFirst(ctx context.Context, candidates []Candidate) (string, error) {
	for _, c := range candidates {
		els := c.Locate(ctx)
		if len(els) == 0 {
			logger.Debug("fallback candidate %q absent, trying next", c.Name)
			continue
		}
		act := c.Act
		if act == nil {
			act = func(ctx context.Context, el driven.Element) error {
				return el.Press(ctx)
			}
		}
		if err := act(ctx, els[0]); err != nil {
			return "", fmt.Errorf("candidate %q: %w", c.Name, err)
		}
		return c.Name, nil
	}
	return "", domain.ErrCandidatesExhausted
}
