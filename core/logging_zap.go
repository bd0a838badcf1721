package core

import "go.uber.org/zap"

type loggerFromZap struct {
	zapLogger *zap.Logger
}

// NewLoggerFromZap creates a Logger backed by a zap.Logger, the
// logging library used throughout this module.
func NewLoggerFromZap(zapLogger *zap.Logger) Logger {
	return &loggerFromZap{zapLogger}
}

func (l *loggerFromZap) Debug(message string, fields ...LogField) {
	l.zapLogger.Debug(message, convertLogFieldsToZap(fields)...)
}

func (l *loggerFromZap) Info(message string, fields ...LogField) {
	l.zapLogger.Info(message, convertLogFieldsToZap(fields)...)
}

func (l *loggerFromZap) Warn(message string, fields ...LogField) {
	l.zapLogger.Warn(message, convertLogFieldsToZap(fields)...)
}

func (l *loggerFromZap) Error(message string, fields ...LogField) {
	l.zapLogger.Error(message, convertLogFieldsToZap(fields)...)
}

func (l *loggerFromZap) WithFields(fields ...LogField) Logger {
	return &loggerFromZap{zapLogger: l.zapLogger.With(convertLogFieldsToZap(fields)...)}
}

func (l *loggerFromZap) Named(name string) Logger {
	return &loggerFromZap{zapLogger: l.zapLogger.Named(name)}
}

func convertLogFieldsToZap(fields []LogField) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		zapFields = append(zapFields, convertLogFieldToZap(field))
	}
	return zapFields
}

func convertLogFieldToZap(field LogField) zap.Field {
	switch field.Type {
	case StringLogFieldType:
		return zap.String(field.Key, field.String)
	case IntegerLogFieldType:
		return zap.Int64(field.Key, field.Integer)
	case BoolLogFieldType:
		return zap.Bool(field.Key, field.Bool)
	case ErrorLogFieldType:
		return zap.Error(field.Err)
	default:
		return zap.Skip()
	}
}
