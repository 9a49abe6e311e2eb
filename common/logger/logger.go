package logger

import (
	"io"
	"log"
	"strings"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

var (
	currentLevel = ERROR
	Info         *log.Logger
	Warn         *log.Logger
	Error        *log.Logger
	Debug        *log.Logger
	Trace        *log.Logger
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning INFO", value)
	return INFO
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

func init() {
	Error = log.New(io.Discard, "ERROR: ", flags)
	Warn = log.New(io.Discard, "WARN:  ", flags)
	Info = log.New(io.Discard, "INFO:  ", flags)
	Debug = log.New(io.Discard, "DEBUG: ", flags)
	Trace = log.New(io.Discard, "TRACE: ", flags)
}

// Initialize enables every level up to logLevel and writes them to out.
// Levels above logLevel keep discarding.
func Initialize(logLevel LogLevel, out io.Writer) {
	currentLevel = logLevel

	writerFor := func(level LogLevel) io.Writer {
		if logLevel >= level {
			return out
		}
		return io.Discard
	}

	Error = log.New(writerFor(ERROR), "ERROR: ", flags)
	Warn = log.New(writerFor(WARN), "WARN:  ", flags)
	Info = log.New(writerFor(INFO), "INFO:  ", flags)
	Debug = log.New(writerFor(DEBUG), "DEBUG: ", flags)
	Trace = log.New(writerFor(TRACE), "TRACE: ", flags)

	Info.Printf("Loggers initialized: '%s'", logLevel.String())
}

func IsLogLevel(level LogLevel) bool {
	return currentLevel >= level
}
