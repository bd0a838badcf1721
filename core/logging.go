package core

// Logger provides a common interface for logging used throughout
// the expansion engine and the packages built on top of it.
type Logger interface {
	// Info logs a message at the info level.
	Info(msg string, fields ...LogField)
	// Debug logs a message at the debug level.
	Debug(msg string, fields ...LogField)
	// Warn logs a message at the warn level.
	Warn(msg string, fields ...LogField)
	// Error logs a message at the error level.
	Error(msg string, fields ...LogField)
	// WithFields returns a new logger enriched with the given fields
	// that will be included in all subsequent log messages.
	WithFields(fields ...LogField) Logger
	// Named returns a new logger with the given name appended to any
	// existing name, joined with a period.
	Named(name string) Logger
}

// LogField represents a key-value pair attached to a log message.
type LogField struct {
	Type    LogFieldType
	Key     string
	String  string
	Integer int64
	Bool    bool
	Err     error
}

// LogFieldType determines which value on a LogField carries data.
type LogFieldType int

const (
	// StringLogFieldType represents a log field with a string value.
	StringLogFieldType LogFieldType = iota
	// IntegerLogFieldType represents a log field with an integer value.
	IntegerLogFieldType
	// BoolLogFieldType represents a log field with a boolean value.
	BoolLogFieldType
	// ErrorLogFieldType represents a log field with an error value.
	ErrorLogFieldType
)

// StringLogField creates a log field carrying a string value.
func StringLogField(key, value string) LogField {
	return LogField{Type: StringLogFieldType, Key: key, String: value}
}

// IntegerLogField creates a log field carrying an integer value.
func IntegerLogField(key string, value int64) LogField {
	return LogField{Type: IntegerLogFieldType, Key: key, Integer: value}
}

// BoolLogField creates a log field carrying a boolean value.
func BoolLogField(key string, value bool) LogField {
	return LogField{Type: BoolLogFieldType, Key: key, Bool: value}
}

// ErrorLogField creates a log field carrying an error value.
func ErrorLogField(key string, value error) LogField {
	return LogField{Type: ErrorLogFieldType, Key: key, Err: value}
}

// NopLogger is a Logger implementation that discards everything sent
// to it. It is the default for callers that don't supply one of their
// own via expand.NewEngine.
type NopLogger struct{}

// NewNopLogger creates a no-op logger.
func NewNopLogger() Logger {
	return &NopLogger{}
}

func (l *NopLogger) Info(msg string, fields ...LogField)  {}
func (l *NopLogger) Debug(msg string, fields ...LogField) {}
func (l *NopLogger) Warn(msg string, fields ...LogField)  {}
func (l *NopLogger) Error(msg string, fields ...LogField) {}

func (l *NopLogger) WithFields(fields ...LogField) Logger {
	return l
}

func (l *NopLogger) Named(name string) Logger {
	return l
}
