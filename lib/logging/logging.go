// Package logging configures the loggers of all dPort packages.
//
// Every package obtains its logger from the dragonboat logger registry
// (logger.GetLogger). InitLoggers installs a formatting factory and sets the
// level of all known package loggers at once.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/lni/dragonboat/v4/logger"
)

// Packages lists the logger names used in this module.
var Packages = []string{"port", "collection", "hub", "cmd"}

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// portLogger implements the ILogger interface with custom formatting
type portLogger struct {
	name   string
	level  logger.LogLevel
	logger *log.Logger
}

func (l *portLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *portLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *portLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log("INFO", format, args...)
	}
}

func (l *portLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *portLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *portLogger) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (l *portLogger) log(levelStr string, format string, args ...interface{}) {
	l.logger.Printf("%-5s | %-10s | %s", levelStr, l.name, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stderr
)

// SetOutput changes the destination of loggers created afterwards.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

// CreateLogger implements the logger.Factory interface
func CreateLogger(pkgName string) logger.ILogger {
	outputMu.Lock()
	w := output
	outputMu.Unlock()

	return &portLogger{
		name:   pkgName,
		level:  logger.WARNING,
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.WARNING, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// factoryOnce guards the factory installation, dragonboat refuses a second factory
var factoryOnce sync.Once

// InitLoggers installs the custom logger factory and sets the level of all package loggers.
// It can be called again to change the level.
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	factoryOnce.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	for _, pkg := range Packages {
		logger.GetLogger(pkg).SetLevel(lvl)
	}
	return nil
}
