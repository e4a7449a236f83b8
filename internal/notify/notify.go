// Package notify sends freedesktop desktop notifications.
package notify

// Urgency is the notification priority defined by the freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is a single desktop notification.
type Notification struct {
	Summary    string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its ID. Unavailable servers yield 0 and no error.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }
