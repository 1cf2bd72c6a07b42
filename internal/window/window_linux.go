//go:build linux

package window

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// x11Observer shells out to xdotool, which must be on PATH.
type x11Observer struct {
	log Logger
}

func newPlatformObserver(log Logger) Observer {
	return &x11Observer{log: log}
}

func (o *x11Observer) Active(ctx context.Context) (Observation, bool) {
	title, err := xdotool(ctx, "getactivewindow", "getwindowname")
	if err != nil {
		o.log.Debugf("active window title: %v", err)
		return Observation{}, false
	}

	pidStr, err := xdotool(ctx, "getactivewindow", "getwindowpid")
	if err != nil {
		o.log.Debugf("active window pid: %v", err)
		return Observation{}, false
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		o.log.Debugf("active window pid %q: %v", pidStr, err)
		return Observation{}, false
	}

	name, err := procName(pid)
	if err != nil {
		o.log.Debugf("inspect pid %d: %v", pid, err)
		return Observation{}, false
	}

	return Observation{Process: name, Title: title}, true
}

func xdotool(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "xdotool", args...).Output()
	if err != nil {
		return "", fmt.Errorf("xdotool %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// procName prefers the executable's base name; comm is truncated to 15 bytes.
func procName(pid int) (string, error) {
	if exe, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid)); err == nil {
		return filepath.Base(exe), nil
	}
	comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(comm)), nil
}
