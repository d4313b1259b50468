//go:build windows

package procexec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// A new process group keeps a console Ctrl+C aimed at the linter from also
// reaching python. Signals do not exist here, so cancellation terminates
// the tool process.
func configureProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP
}

func killProcessGroup(pid int, _ syscall.Signal) error {
	if pid <= 0 {
		return nil
	}
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("open tool process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h) //nolint:errcheck // handle is only used for TerminateProcess.

	if err := windows.TerminateProcess(h, 1); err != nil {
		return fmt.Errorf("terminate tool process %d: %w", pid, err)
	}
	return nil
}

// OpenProcess on a reaped pid fails with ERROR_INVALID_PARAMETER, and
// TerminateProcess on an exited one with ERROR_ACCESS_DENIED.
func isNoSuchProcess(err error) bool {
	return errors.Is(err, os.ErrProcessDone) ||
		errors.Is(err, windows.ERROR_INVALID_PARAMETER) ||
		errors.Is(err, windows.ERROR_ACCESS_DENIED)
}

// isTransientStart reports an executable still held open by its writer,
// as when a virtualenv is being installed.
func isTransientStart(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION)
}
