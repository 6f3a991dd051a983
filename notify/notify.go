package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Notifier displays transient user-facing messages.
type Notifier interface {
	Info(message string)
	Success(message string)
	Warn(message string)
	Error(message string, err error)
}

// Styles contains lipgloss styles for the console notifier
type Styles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default console styling
func DefaultStyles() Styles {
	return Styles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),            // Blue
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),            // Yellow
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
	}
}

// Console writes styled messages to a terminal.
type Console struct {
	writer io.Writer
	styles Styles
}

// NewConsole creates a console notifier writing to stderr.
func NewConsole() *Console {
	return &Console{
		writer: os.Stderr,
		styles: DefaultStyles(),
	}
}

// WithWriter sets a custom writer for console output
func (c *Console) WithWriter(w io.Writer) *Console {
	c.writer = w
	return c
}

// Info displays an informational message
func (c *Console) Info(message string) {
	fmt.Fprintf(c.writer, "%s\n", c.styles.Info.Render(message))
}

// Success displays a success message with a checkmark
func (c *Console) Success(message string) {
	fmt.Fprintf(c.writer, "%s %s\n",
		c.styles.Success.Render("✓"),
		c.styles.Success.Render(message))
}

// Warn displays a warning
func (c *Console) Warn(message string) {
	fmt.Fprintf(c.writer, "%s %s\n",
		c.styles.Warning.Render("⚠"),
		c.styles.Warning.Render(message))
}

// Error displays an error
func (c *Console) Error(message string, err error) {
	fmt.Fprintf(c.writer, "%s %s",
		c.styles.Error.Render("✗"),
		c.styles.Error.Render(message))
	if err != nil {
		fmt.Fprintf(c.writer, ": %s", c.styles.Error.Render(err.Error()))
	}
	fmt.Fprintln(c.writer)
}

// Silent discards all messages. Used when notifications are disabled.
type Silent struct{}

func (Silent) Info(string)          {}
func (Silent) Success(string)       {}
func (Silent) Warn(string)          {}
func (Silent) Error(string, error)  {}

// multi fans a message out to several sinks.
type multi struct {
	sinks []Notifier
}

// Multi returns a notifier that forwards each message to every given sink.
func Multi(sinks ...Notifier) Notifier {
	return &multi{sinks: sinks}
}

func (m *multi) Info(message string) {
	for _, s := range m.sinks {
		s.Info(message)
	}
}

func (m *multi) Success(message string) {
	for _, s := range m.sinks {
		s.Success(message)
	}
}

func (m *multi) Warn(message string) {
	for _, s := range m.sinks {
		s.Warn(message)
	}
}

func (m *multi) Error(message string, err error) {
	for _, s := range m.sinks {
		s.Error(message, err)
	}
}
