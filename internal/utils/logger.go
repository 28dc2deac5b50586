package utils

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Print is the process logger. It works before Init, just without the styles.
var Print = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.DateTime,
})

// Init restyles Print and sets its level ("debug", "info", "warn", "error").
func Init(level string) {
	Print = NewLogger(os.Stderr, level)
}

// NewLogger builds a styled logger writing to w, e.g. for a session log.
func NewLogger(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		//ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "🂡",
	})
	if lv, err := log.ParseLevel(level); err == nil {
		l.SetLevel(lv)
	}
	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO🌟").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#90EE9080")).
		Foreground(lipgloss.Color("#006400FF")).Bold(true)

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN🃏").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#FFD700FF")).
		Foreground(lipgloss.Color("#000000FF")).Bold(true)

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR🔥").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#FF0000FF")).
		Foreground(lipgloss.Color("#00FFFF00")).Bold(true)

	styles.Levels[log.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL⚡️").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#000000FF")).
		Foreground(lipgloss.Color("#00FFFF00")).Bold(true)
	l.SetStyles(styles)
	return l
}
