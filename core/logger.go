package core

// Logger is the diagnostic channel.
// expected args: error, map[string]interface{} (custom data), Slot
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
