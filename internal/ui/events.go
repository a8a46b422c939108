package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nzaccagnino/notely/internal/session"
)

type stateMsg session.State
type notificationMsg session.Notification

// Events carries controller output into the bubbletea loop. State changes
// are coalesced into a single pending signal; the model reads the latest
// snapshot when it handles it. Neither side ever blocks the controller.
type Events struct {
	changed       chan struct{}
	notifications chan session.Notification
}

func NewEvents() *Events {
	return &Events{
		changed:       make(chan struct{}, 1),
		notifications: make(chan session.Notification, 16),
	}
}

// Notify implements session.Notifier. When the queue is full the
// notification is dropped.
func (e *Events) Notify(n session.Notification) {
	select {
	case e.notifications <- n:
	default:
	}
}

// StateChanged is the controller subscription callback.
func (e *Events) StateChanged(session.State) {
	select {
	case e.changed <- struct{}{}:
	default:
	}
}

func (e *Events) listen(snapshot func() session.State) tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-e.notifications:
			return notificationMsg(n)
		case <-e.changed:
			return stateMsg(snapshot())
		}
	}
}
