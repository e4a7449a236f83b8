package nowplaying

import (
	"sync"
	"time"

	"github.com/hugolgst/rich-go/client"
)

const (
	discordReconnectCooldown = 2 * time.Second
	discordMaxCooldown       = time.Minute
)

// discordIPC is the subset of rich-go used by Discord.
type discordIPC struct {
	login       func(appID string) error
	logout      func()
	setActivity func(client.Activity) error
}

var richGo = discordIPC{
	login:       client.Login,
	logout:      client.Logout,
	setActivity: client.SetActivity,
}

// Discord publishes snapshots as Discord Rich Presence. It does not accept
// remote commands.
type Discord struct {
	reporter

	appID string
	ipc   discordIPC
	now   func() time.Time

	mu           sync.Mutex
	connected    bool
	lastAttempt  time.Time
	failures     int
	lastArtist   string
	lastTitle    string
	lastPlaying  bool
	hasPublished bool
}

// NewDiscord creates a presence publisher for the Discord application appID.
func NewDiscord(appID string) *Discord {
	return &Discord{appID: appID, ipc: richGo, now: time.Now}
}

// SetNowPlaying pushes an activity when the track or play state changed.
func (d *Discord) SetNowPlaying(info Info) {
	d.mu.Lock()
	defer d.mu.Unlock()

	playing := info.Playing()
	if d.hasPublished && d.connected &&
		info.Artist == d.lastArtist && info.Title == d.lastTitle && playing == d.lastPlaying {
		return
	}
	if !d.connectLocked() {
		return
	}

	activity := client.Activity{
		Details:   info.Title,
		State:     info.Artist,
		LargeText: info.Title,
	}
	if playing {
		start := d.now().Add(-info.Elapsed())
		activity.Timestamps = &client.Timestamps{Start: &start}
		activity.SmallText = "Playing"
	} else {
		activity.SmallText = "Paused"
	}

	if err := d.ipc.setActivity(activity); err != nil {
		// Discord restarted or closed: drop the connection and retry later.
		d.ipc.logout()
		d.connected = false
		d.report(err)
		return
	}

	d.report(nil)
	d.hasPublished = true
	d.lastArtist = info.Artist
	d.lastTitle = info.Title
	d.lastPlaying = playing
}

func (d *Discord) connectLocked() bool {
	if d.connected {
		return true
	}
	now := d.now()
	if !d.lastAttempt.IsZero() && now.Sub(d.lastAttempt) < d.cooldown() {
		return false
	}
	d.lastAttempt = now
	if err := d.ipc.login(d.appID); err != nil {
		d.failures++
		d.report(err)
		return false
	}
	d.failures = 0
	d.connected = true
	return true
}

// cooldown doubles with each failed login, up to discordMaxCooldown.
func (d *Discord) cooldown() time.Duration {
	wait := discordReconnectCooldown
	for i := 1; i < d.failures && wait < discordMaxCooldown; i++ {
		wait *= 2
	}
	return min(wait, discordMaxCooldown)
}

// Close clears the presence connection.
func (d *Discord) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.connected {
		d.ipc.logout()
		d.connected = false
	}
}

var _ Surface = (*Discord)(nil)
