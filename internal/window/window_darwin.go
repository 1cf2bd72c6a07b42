//go:build darwin

package window

import (
	"context"
	"os/exec"
	"strings"
)

const frontmostScript = `tell application "System Events"
	set proc to first application process whose frontmost is true
	set procName to name of proc
	set winTitle to ""
	try
		set winTitle to value of attribute "AXTitle" of front window of proc
	end try
end tell
return procName & linefeed & winTitle`

type osaObserver struct {
	log Logger
}

func newPlatformObserver(log Logger) Observer {
	return &osaObserver{log: log}
}

func (o *osaObserver) Active(ctx context.Context) (Observation, bool) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", frontmostScript).Output()
	if err != nil {
		o.log.Debugf("osascript: %v", err)
		return Observation{}, false
	}

	name, title, _ := strings.Cut(strings.TrimRight(string(out), "\n"), "\n")
	if name == "" {
		return Observation{}, false
	}
	return Observation{Process: name, Title: title}, true
}
