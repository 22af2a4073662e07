package logger

import "log"

// Verbosity levels understood by Debugf callers.
const (
	DebugOff  = 0
	DebugLow  = 1
	DebugHigh = 4
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Debugf(level int, format string, v ...any)
	Level() int
}

type stdLogger struct {
	level int
}

func New(level int) Logger { return &stdLogger{level: level} }

// Nop discards debug output; info and error lines still go to the standard logger.
func Nop() Logger { return &stdLogger{} }

func (l *stdLogger) Infof(format string, v ...any)  { log.Printf("[INFO] "+format, v...) }
func (l *stdLogger) Errorf(format string, v ...any) { log.Printf("[ERROR] "+format, v...) }
func (l *stdLogger) Level() int                     { return l.level }

func (l *stdLogger) Debugf(level int, format string, v ...any) {
	if level <= 0 || level > l.level {
		return
	}
	log.Printf("[DEBUG] "+format, v...)
}
