package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a message
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Message is a titled diagnostic with optional suggestions and follow-up hints
type Message struct {
	Level       Level
	Title       string
	Detail      string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

// String formats the message
//
// Example output:
//
//	✗ CLASS NOT FOUND
//	   No reflection data for "App.Gretter".
//
//	   Did you mean: App.Greeter?
//
//	   → List classes: scriba inspect
func (m Message) String() string {
	var b strings.Builder

	var accent *color.Color
	var mark string
	switch m.Level {
	case LevelWarning:
		accent, mark = style(m.NoColor, color.FgYellow, color.Bold), "!"
	case LevelInfo:
		accent, mark = style(m.NoColor, color.FgCyan, color.Bold), "i"
	default:
		accent, mark = style(m.NoColor, color.FgRed, color.Bold), "✗"
	}

	accent.Fprintf(&b, "%s %s\n", mark, m.Title)
	if m.Detail != "" {
		fmt.Fprintf(&b, "   %s\n", m.Detail)
	}

	if len(m.Suggestions) > 0 {
		b.WriteString("\n")
		style(m.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(m.Suggestions, ", "))
	}

	if len(m.Hints) > 0 {
		b.WriteString("\n")
		hint := style(m.NoColor, color.FgCyan)
		for _, h := range m.Hints {
			hint.Fprintf(&b, "   → %s\n", h)
		}
	}

	return b.String()
}

// Write writes the message to w
func (m Message) Write(w io.Writer) {
	fmt.Fprint(w, m.String())
}

// ClassNotFound reports an unknown class reference
func ClassNotFound(ref string, suggestions []string, noColor bool) Message {
	return Message{
		Title:       "CLASS NOT FOUND",
		Detail:      fmt.Sprintf("No reflection data for %q.", ref),
		Suggestions: suggestions,
		Hints:       []string{"List classes: scriba inspect --format table"},
		NoColor:     noColor,
	}
}

// Success formats a completion line
func Success(message string, noColor bool) string {
	return style(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}
