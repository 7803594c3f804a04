//go:build profile && windows

package profiler

import "syscall"

// Keep the speedscope launcher from flashing a console window.
func hideWindowAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: true}
}
