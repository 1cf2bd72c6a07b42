//go:build !windows && !linux && !darwin

package window

import "context"

type unsupportedObserver struct{}

func newPlatformObserver(log Logger) Observer {
	log.Debugf("foreground window inspection is not supported on this platform")
	return unsupportedObserver{}
}

func (unsupportedObserver) Active(context.Context) (Observation, bool) {
	return Observation{}, false
}
