package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

// Key names understood by the accessibility backends.
const (
	keyBackspace = "backspace"
	keyReturn    = "\n"
)

// Typer delivers literal text to the host one key event per character.
// Bulk delivery of long strings (notably absolute file paths) has been
// observed to truncate in the host's text widgets; per-character
// delivery with pacing is a hard requirement of the flow, not an
// optimisation.
type Typer struct {
	ax      driven.Accessibility
	limiter *rate.Limiter
}

// NewTyper creates a typer pacing key events keyDelay apart.
// A zero delay disables pacing (used in tests).
func NewTyper(ax driven.Accessibility, keyDelay time.Duration) *Typer {
	var limiter *rate.Limiter
	if keyDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(keyDelay), 1)
	}
	return &Typer{ax: ax, limiter: limiter}
}

// Type sends text as one SendKey per character, in order.
func (t *Typer) Type(ctx context.Context, text string) error {
	for _, r := range text {
		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("pacing: %w", err)
			}
		}
		if err := t.ax.SendKey(ctx, string(r)); err != nil {
			return fmt.Errorf("send key %q: %w", r, err)
		}
	}
	return nil
}

// Clear empties the focused text field via select-all + delete.
// Path sheets open with the previous path pre-filled.
func (t *Typer) Clear(ctx context.Context) error {
	if err := t.ax.SendKeyChord(ctx, "a", []domain.Modifier{domain.ModCommand}); err != nil {
		return fmt.Errorf("select all: %w", err)
	}
	if err := t.ax.SendKey(ctx, keyBackspace); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}

// Submit sends the return key.
func (t *Typer) Submit(ctx context.Context) error {
	if err := t.ax.SendKey(ctx, keyReturn); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}
