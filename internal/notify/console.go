package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console writes warnings to a terminal stream.
type Console struct {
	Out io.Writer
}

// NewConsole returns a Console writing to stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stderr}
}

func (c *Console) Warn(title, text string) error {
	out := c.Out
	if out == nil {
		out = os.Stderr
	}
	heading := color.New(color.FgYellow, color.Bold).Sprintf("⚠ %s:", title)
	if _, err := fmt.Fprintf(out, "%s %s\n", heading, text); err != nil {
		return fmt.Errorf("failed to write warning: %w", err)
	}
	return nil
}
