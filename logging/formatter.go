package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

var (
	componentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	levelStyles = map[logrus.Level]lipgloss.Style{
		logrus.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		logrus.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		logrus.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		logrus.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// TextFormatter renders entries as
// "2006-01-02 15:04:05 [LEVEL] [component] message key=value".
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	b.WriteString("[")
	b.WriteString(renderLevel(entry.Level))
	b.WriteString("]")

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		b.WriteString(fmt.Sprintf(" [%s]", componentStyle.Render(fmt.Sprintf("%v", component))))
	}

	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		funcName := filepath.Base(entry.Caller.Function)
		b.WriteString(fmt.Sprintf(" [%s:%d %s]", fileName, entry.Caller.Line, funcName))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Remaining fields in stable order so log lines diff cleanly
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", key, entry.Data[key]))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

func renderLevel(level logrus.Level) string {
	name := level.String()
	if name == "warning" {
		name = "warn"
	}
	name = strings.ToUpper(name)
	if style, ok := levelStyles[level]; ok {
		return style.Render(name)
	}
	return name
}
