package nowplaying

import (
	"github.com/llehouerou/awesomeaudio/internal/notify"
)

const notifyTimeoutMS = 5000

// Notifications shows a desktop notification when a track starts playing.
// Later tracks replace the previous notification.
type Notifications struct {
	reporter

	notifier notify.Notifier
	icon     string

	shown string
	id    uint32
}

// NewNotifications creates the surface. icon is an image path or icon name
// shown with every notification.
func NewNotifications(n notify.Notifier, icon string) *Notifications {
	return &Notifications{notifier: n, icon: icon}
}

// SetNowPlaying notifies once per artist/title while playing.
func (s *Notifications) SetNowPlaying(info Info) {
	if !info.Playing() || info.Title == "" {
		return
	}
	key := info.Artist + "\x00" + info.Title
	if key == s.shown {
		return
	}
	s.shown = key

	id, err := s.notifier.Notify(notify.Notification{
		Summary:    info.Title,
		Body:       info.Artist,
		Icon:       s.icon,
		Timeout:    notifyTimeoutMS,
		ReplacesID: s.id,
		Urgency:    notify.UrgencyLow,
	})
	s.report(err)
	if err == nil {
		s.id = id
	}
}

// Close dismisses the current notification.
func (s *Notifications) Close() error {
	if s.id == 0 {
		return nil
	}
	return s.notifier.Close(s.id)
}
