package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Progress draws a single-line bar on w. It is safe for concurrent use, so batch
// workers can call Add directly.
type Progress struct {
	mu      sync.Mutex
	writer  io.Writer
	total   int
	current int
	width   int
	label   string
	noColor bool
}

// NewProgress creates a bar for total steps
func NewProgress(w io.Writer, total int, label string, noColor bool) *Progress {
	return &Progress{writer: w, total: total, width: 30, label: label, noColor: noColor}
}

// Add advances the bar by n steps, clamped to total
func (p *Progress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = min(p.current+n, p.total)
	p.render()
}

// Current is the number of completed steps
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Finish ends the bar line
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total > 0 {
		fmt.Fprintln(p.writer)
	}
}

func (p *Progress) render() {
	if p.total == 0 {
		return
	}

	filled := p.width * p.current / p.total
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if p.noColor {
		cyan.DisableColor()
		gray.DisableColor()
	}

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("█", filled))
	gray.Fprint(&bar, strings.Repeat("░", p.width-filled))
	bar.WriteString("]")

	fmt.Fprintf(p.writer, "\r%s %d/%d %s", bar.String(), p.current, p.total, p.label)
}
