package logger

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = "${time_rfc3339} ${level} [${prefix}]"

// New returns a leveled logger writing to out. The same logger is handed
// to echo so request logs and application logs share one format.
func New(prefix, level string, out io.Writer) *log.Logger {
	l := log.New(prefix)
	l.SetHeader(header)
	l.SetOutput(out)
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps a config string to a log level; unknown values mean info.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
