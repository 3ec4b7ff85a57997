//go:build !windows

package runner

import (
	"os"
	"os/exec"
	"syscall"
)

// replaceProcess replaces the current process image via exec(2) (§4.11
// step 3). It only returns on failure — the kernel does not hand control
// back to Go on success. argv[0] is resolved against $PATH first, since
// syscall.Exec (unlike a shell) does not do that itself.
func replaceProcess(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	return syscall.Exec(path, argv, os.Environ())
}
