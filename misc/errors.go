package misc

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	Fatal Severity = iota
	Error
	Warning
	Info
	Debug
)

type Severity int

func (s Severity) String() string {
	return []string{
		"Fatal", "Error", "Warning", "Info", "Debug",
	}[s]
}

// CheckError logs err at the given severity and reports whether there was an error. Fatal does not return.
func CheckError(err error, logger bslogger.Logger, severity Severity) bool {
	if err == nil {
		return false
	}
	logAt(logger, severity, err.Error())
	return true
}

// CheckErrorf is CheckError with a message prefix describing what was being attempted
func CheckErrorf(err error, logger bslogger.Logger, severity Severity, format string, values ...interface{}) bool {
	if err == nil {
		return false
	}
	logAt(logger, severity, fmt.Sprintf("%s - %s", fmt.Sprintf(format, values...), err))
	return true
}

func logAt(logger bslogger.Logger, severity Severity, message string) {
	switch severity {
	case Fatal:
		logger.Fatal(message)
	case Error:
		logger.Error(message)
	case Warning:
		logger.Warning(message)
	case Info:
		logger.Info(message)
	case Debug:
		logger.Debug(message)
	default:
		logger.Fatal(message)
	}
}
