package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/logging"
)

// logFileWriter holds the log file writer so it can be closed on exit.
var (
	logFileWriter   io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup
	logFileWriterMu sync.Mutex     //nolint:gochecknoglobals // Protects logFileWriter
)

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// InitLogger creates the CLI logger.
//
// Log levels:
//   - verbose=true: Debug level (every svn invocation is logged)
//   - quiet=true: Warn level (denied and failed operations only)
//   - default: Info level
//
// Console output is human-readable on a terminal without NO_COLOR and JSON
// otherwise. Everything is also written to ~/.svnop/logs/svnop.log with
// rotation; if that file cannot be opened, logging continues on the console.
// Both sinks redact credentials.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	console := selectOutput()

	writer := io.Writer(logging.NewFilteringWriter(console))
	if fileWriter, err := createLogFileWriter(); err == nil {
		setLogFileWriter(fileWriter)
		writer = zerolog.MultiLevelWriter(writer, fileWriter)
	}

	logger := buildLogger(writer, selectLevel(verbose, quiet))
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a logger writing only to w.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := buildLogger(logging.NewFilteringWriter(w), selectLevel(verbose, quiet))
	setGlobalLogger(logger)
	return logger
}

func buildLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).Hook(logging.NewSensitiveDataHook()).With().Timestamp().Logger()
}

// setGlobalLogger points the zerolog/log package logger at the CLI logger.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

func setLogFileWriter(w io.WriteCloser) {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
	}
	logFileWriter = w
}

// CloseLogFile closes the log file writer if it was opened.
func CloseLogFile() {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks the console sink based on terminal capabilities.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter opens the rotating log file behind a credential filter.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}
	return logging.NewFilteringWriteCloser(lj), nil
}

// LogFilePath returns the path to the CLI log file.
func LogFilePath() (string, error) {
	dir, err := config.GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
