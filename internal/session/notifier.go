package session

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=mocks/mock_notifier.go -package=mocks github.com/nzaccagnino/notely/internal/session Notifier

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a short user-visible message, the terminal's snackbar.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications raised by the controller. Implementations
// must not call back into the controller synchronously.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}
