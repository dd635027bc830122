package syntest

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
)

const width = 5

// logStyles returns the logger styles: the level names at full width so
// nothing gets cut off, and the keys the harness logs on every line (the
// fixture path, error details) picked out so they scan easily in a long
// triage session.
func logStyles() *log.Styles {
	return &log.Styles{
		Timestamp: lipgloss.NewStyle().Faint(true),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Faint(true),
		Message:   lipgloss.NewStyle(),
		Key:       lipgloss.NewStyle().Faint(true),
		Value:     lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().
				SetString(strings.ToUpper(log.DebugLevel.String())).
				Bold(true).
				MaxWidth(width).
				Foreground(lipgloss.Color("75")),
			log.InfoLevel: lipgloss.NewStyle().
				SetString(strings.ToUpper(log.InfoLevel.String())).
				Bold(true).
				MaxWidth(width).
				Foreground(lipgloss.Color("42")),
			log.WarnLevel: lipgloss.NewStyle().
				SetString(strings.ToUpper(log.WarnLevel.String())).
				Bold(true).
				MaxWidth(width).
				Foreground(lipgloss.Color("214")),
			log.ErrorLevel: lipgloss.NewStyle().
				SetString(strings.ToUpper(log.ErrorLevel.String())).
				Bold(true).
				MaxWidth(width).
				Foreground(lipgloss.Color("196")),
			log.FatalLevel: lipgloss.NewStyle().
				SetString(strings.ToUpper(log.FatalLevel.String())).
				Bold(true).
				MaxWidth(width).
				Foreground(lipgloss.Color("160")),
		},
		Keys: map[string]lipgloss.Style{
			"path": lipgloss.NewStyle().Bold(true),
			"err":  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Values: map[string]lipgloss.Style{
			"err": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}
