package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type Config struct {
	Verbose bool
	// File, when set, receives every log line in addition to (or, while a
	// TUI owns the terminal, instead of) stderr.
	File string
	// TerminalBusy suppresses stderr output while a bubbletea program runs.
	TerminalBusy bool
}

// Logger wraps a charmbracelet logger and the optional file it writes to.
type Logger struct {
	*log.Logger
	file *os.File
}

// New builds a logger from cfg. Call Close when done if cfg.File was set.
func New(cfg Config) (*Logger, error) {
	var sinks []io.Writer
	if !cfg.TerminalBusy {
		sinks = append(sinks, os.Stderr)
	}

	l := &Logger{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		sinks = append(sinks, f)
	}

	var out io.Writer
	switch len(sinks) {
	case 0:
		out = io.Discard
	case 1:
		out = sinks[0]
	default:
		out = io.MultiWriter(sinks...)
	}

	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	l.Logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "webpconv",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	l.Logger.SetStyles(styles())
	return l, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Prefix = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A8291"))
	s.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INFO").Bold(true).Foreground(lipgloss.Color("#88C0D0"))
	s.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(lipgloss.Color("#EBCB8B"))
	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERROR").Bold(true).Foreground(lipgloss.Color("#BF616A"))
	s.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBUG").Foreground(lipgloss.Color("#7A8291"))
	return s
}
