package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/automoto/memory-ninja/components"
)

var ErrMissingTarget = errors.New("spawn command has no target")

// SpawnCommand asks for one fruit standing for an idle target.
type SpawnCommand struct {
	TargetID          int
	DisplayTitle      string
	DisplayURL        string
	IdleDuration      time.Duration
	EstimatedWeightMB int
}

const (
	maxTitleRunes = 20
	untitled      = "Untitled"
)

// Normalize fills defaults for missing fields. A command without a target
// cannot be acted on and is rejected.
func (c SpawnCommand) Normalize(defaultWeightMB int) (SpawnCommand, error) {
	if c.TargetID <= 0 {
		return c, fmt.Errorf("%w: id %d", ErrMissingTarget, c.TargetID)
	}
	c.DisplayTitle = strings.TrimSpace(c.DisplayTitle)
	c.DisplayURL = strings.TrimSpace(c.DisplayURL)
	if c.DisplayTitle == "" {
		c.DisplayTitle = c.DisplayURL
	}
	if c.DisplayTitle == "" {
		c.DisplayTitle = untitled
	}
	if c.IdleDuration < 0 {
		c.IdleDuration = 0
	}
	if c.EstimatedWeightMB <= 0 {
		c.EstimatedWeightMB = defaultWeightMB
	}
	return c, nil
}

func (c SpawnCommand) Meta() components.SpawnMeta {
	return components.SpawnMeta{
		TargetID:     c.TargetID,
		Title:        c.DisplayTitle,
		URL:          c.DisplayURL,
		IdleDuration: c.IdleDuration,
		WeightMB:     c.EstimatedWeightMB,
	}
}

// DisplayTitle shortens a title for a fruit label.
func DisplayTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleRunes {
		return title
	}
	r := []rune(title)
	return string(r[:maxTitleRunes]) + "..."
}
