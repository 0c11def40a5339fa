package core

// Logger is any leveled logger. Implementations may inspect trailing args
// for well-known types (error, Person) and route them to their backend.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the acting portal user in error reports.
type Person struct {
	ID       string
	Username string
	Email    string
}
