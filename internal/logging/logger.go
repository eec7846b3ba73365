package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerSetupParams selects the log level, format and optional rotated log file.
type LoggerSetupParams struct {
	LogFileName   string
	LogToConsole  bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the global logrus logger. Logs go to stderr unless a file is
// given; with LogToConsole they go to both.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		log.SetOutput(os.Stderr)
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		LocalTime:  false,
		Compress:   true,
	}

	if params.LogToConsole {
		log.SetOutput(NewCombinedWriter(os.Stderr, lumberJackLogger))
	} else {
		log.SetOutput(lumberJackLogger)
	}
}

// GetLevel maps a level name to a logrus level; unknown names fall back to info.
func GetLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// CombinedWriter fans every write out to all writers, continuing past failures.
type CombinedWriter struct {
	Writers []io.Writer
}

// NewCombinedWriter returns a CombinedWriter over writers, in order.
func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

// Write reports the smallest count any writer accepted, so n is len(p) only when
// every writer took all of p.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
		}
		n = min(n, written)
	}
	return n, err
}
