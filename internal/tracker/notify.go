package tracker

import (
	"sync"
	"time"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultNotifyDuration is how long a notification stays up unless told otherwise.
const DefaultNotifyDuration = 3 * time.Second

// Notifier receives transient user-facing messages.
type Notifier interface {
	Notify(kind Kind, message string, d time.Duration)
}

// Notification is a message currently on display.
type Notification struct {
	Kind    Kind
	Message string
}

// Toaster holds at most one notification and dismisses it after its
// duration. A new notification replaces the current one and cancels its
// pending dismissal.
type Toaster struct {
	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
	// OnShow, when set, is called for every notification shown.
	OnShow func(Notification)
}

func NewToaster(onShow func(Notification)) *Toaster {
	return &Toaster{OnShow: onShow}
}

func (t *Toaster) Notify(kind Kind, message string, d time.Duration) {
	if d <= 0 {
		d = DefaultNotifyDuration
	}
	n := &Notification{Kind: kind, Message: message}

	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.current = n
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// A later notification owns the slot now.
		if t.current == n {
			t.current = nil
			t.timer = nil
		}
	})
	onShow := t.OnShow
	t.mu.Unlock()

	if onShow != nil {
		onShow(*n)
	}
}

// Current returns the notification on display, if any.
func (t *Toaster) Current() (Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Notification{}, false
	}
	return *t.current, true
}

// Dismiss clears the notification and cancels its timer.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = nil
}
