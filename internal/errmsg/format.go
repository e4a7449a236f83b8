// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/Southclaws/fault/fmsg"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackSetup Op = "set up playback"
	OpPlaybackLoad  Op = "load media"
	OpPlaybackClose Op = "release playback"

	// Now-playing surfaces
	OpMediaCenter Op = "publish now playing"
	OpArtworkLoad Op = "load artwork"
	OpDiscord     Op = "update Discord presence"
	OpLastfmSend  Op = "send to Last.fm"
	OpScrobble    Op = "scrobble"
	OpNotify      Op = "show notification"

	// State
	OpStateOpen     Op = "open state database"
	OpPositionLoad  Op = "load resume position"
	OpPositionClear Op = "clear resume position"
	OpVolumeLoad    Op = "load volume"
	OpVolumeSave    Op = "save volume"

	// Initialization
	OpConfigLoad Op = "load config"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message. Errors carrying a fault
// message show that message instead of the raw chain.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, describe(err))
}

func describe(err error) string {
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	return err.Error()
}
