package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

var (
	// ErrSessionSetup is returned by Setup when the audio session refused the
	// category or activation request.
	ErrSessionSetup = errors.New("audio session setup failed")
	// ErrAlreadySetup is returned by a second call to Setup.
	ErrAlreadySetup = errors.New("controller already set up")
	// ErrClosed is returned by Setup after Close.
	ErrClosed = errors.New("controller closed")
	// ErrNoEngine is returned by Setup when no engine factory was injected.
	ErrNoEngine = errors.New("no engine factory")
)

func sessionError(err error, step string, src Source) error {
	return fault.Wrap(fmt.Errorf("%w: %w", ErrSessionSetup, err),
		fctx.With(context.Background(),
			"error_at", step,
			"source", src.URI(),
		),
		ftag.With(ftag.Internal),
		fmsg.WithDesc("session setup", "Cannot set up the audio session."),
	)
}
