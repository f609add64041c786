package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const progressWidth = 30

// Progress draws a single-line bar for a known number of steps
type Progress struct {
	writer  io.Writer
	label   string
	total   int
	done    int
	noColor bool
}

// NewProgress creates a progress bar for total steps
func NewProgress(w io.Writer, label string, total int, noColor bool) *Progress {
	return &Progress{writer: w, label: label, total: total, noColor: noColor}
}

// Step advances the bar by one and redraws it
func (p *Progress) Step() {
	if p.done < p.total {
		p.done++
	}
	p.render()
}

// Finish completes the bar and ends the line
func (p *Progress) Finish() {
	p.done = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

func (p *Progress) render() {
	filled := progressWidth
	if p.total > 0 {
		filled = p.done * progressWidth / p.total
	}

	bar := style(p.noColor, color.FgGreen).Sprint(strings.Repeat("█", filled)) +
		style(p.noColor, color.FgHiBlack).Sprint(strings.Repeat("░", progressWidth-filled))
	fmt.Fprintf(p.writer, "\r%s %s %d/%d", p.label, bar, p.done, p.total)
}
