//go:build windows

package runner

import (
	"os"
	"os/exec"

	"github.com/gisht/gisht/internal/result"
)

// replaceProcess spawns argv[0] with argv[1:], waits, and exits the
// current process with the child's code — windows has no exec(2), so this
// is the substitute for process replacement (§4.11 step 6). It returns
// only when the child could not even be started, so the caller can still
// attempt interpreter inference on ENOENT/ENOEXEC.
func replaceProcess(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	if err := cmd.Start(); err != nil {
		return err
	}

	code := result.ExitCodeUnavailable
	if err := cmd.Wait(); err == nil {
		code = 0
	} else if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	os.Exit(code)
	return nil
}
