// Package lastfm sends now-playing updates and scrobbles to Last.fm.
package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNotAuthenticated is returned when an operation requires a session key.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrMissingTimestamp is returned when scrobbling a track without start time.
var ErrMissingTimestamp = errors.New("scrobble requires a timestamp")

// Client wraps the Last.fm API.
type Client struct {
	api        *lastfm.Api
	sessionKey string
}

// New creates a client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret)}
}

// SetSessionKey sets the authenticated session key.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
	c.api.SetSession(key)
}

// IsAuthenticated returns true if a session key is set.
func (c *Client) IsAuthenticated() bool {
	return c.sessionKey != ""
}

// UpdateNowPlaying sends a "now playing" notification.
func (c *Client) UpdateNowPlaying(track Track) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if _, err := c.api.Track.UpdateNowPlaying(lastfm.P(track.params())); err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}

// Scrobble submits a finished play.
func (c *Client) Scrobble(track Track) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if track.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	params := track.params()
	params["timestamp"] = track.Timestamp.Unix()
	if _, err := c.api.Track.Scrobble(lastfm.P(params)); err != nil {
		return fmt.Errorf("scrobble: %w", err)
	}
	return nil
}
