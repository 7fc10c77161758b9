package helpers

import (
	"errors"

	"github.com/getsentry/raven-go"
	"github.com/ludobot/ludo/cache"
)

// LogMachineryError is registered as the machinery log_error task, wired as
// OnError of other task signatures
func LogMachineryError(errorMessage string) error {
	cache.GetLogger().WithField("module", "machinery").Error(errorMessage)
	raven.CaptureError(errors.New(errorMessage), map[string]string{"source": "machinery"})
	return nil
}
