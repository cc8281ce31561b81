package installer

// Logger provides structured logging for install operations.
// This interface allows users to plug in their own logging implementation.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})
}

// noopLogger is a Logger implementation that does nothing.
// This is the default logger used when none is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}

// loggerOrDefault returns log, or the no-op logger when log is nil.
func loggerOrDefault(log Logger) Logger {
	if log == nil {
		return &noopLogger{}
	}
	return log
}
