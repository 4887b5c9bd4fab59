// Package logger provides a small structured-logging interface that
// applications embedding the ftma/gwde cores can implement with whatever
// logging stack they already use. The cores themselves depend only on this
// interface, never on a concrete logging library.
package logger

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error field.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the interface applications implement to receive structured
// logs from the cores. Debug/Info/Warn/Error mirror the common leveled
// logging shape; With returns a child logger carrying additional fields on
// every subsequent call.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	WithError(err error) Logger
}

// noop discards everything. It is the default when no logger is supplied.
type noop struct{}

// NoOp returns a Logger that does nothing, safe to use as a default.
func NoOp() Logger { return noop{} }

func (noop) Debug(string, ...Field)   {}
func (noop) Info(string, ...Field)    {}
func (noop) Warn(string, ...Field)    {}
func (noop) Error(string, ...Field)   {}
func (n noop) With(...Field) Logger   { return n }
func (n noop) WithError(error) Logger { return n }
