package runner

import (
	"strings"
	"syscall"
	"testing"
)

func TestIsRetryableForEnoentAndEnoexec(t *testing.T) {
	if !isRetryable(syscall.ENOENT) {
		t.Error("expected ENOENT to be retryable")
	}
	if !isRetryable(syscall.ENOEXEC) {
		t.Error("expected ENOEXEC to be retryable")
	}
	if isRetryable(syscall.EACCES) {
		t.Error("expected EACCES to not be retryable")
	}
	if isRetryable(nil) {
		t.Error("expected nil to not be retryable")
	}
}

func TestIsRetryableUnwrapsWrappedErrors(t *testing.T) {
	wrapped := &fakePathError{err: syscall.ENOENT}
	if !isRetryable(wrapped) {
		t.Error("expected a wrapped ENOENT to be retryable via errors.Is")
	}
}

type fakePathError struct{ err error }

func (e *fakePathError) Error() string { return "fake: " + e.err.Error() }
func (e *fakePathError) Unwrap() error { return e.err }

func TestSubstituteFillsScriptAndQuotesArgs(t *testing.T) {
	tmpl := "sh -- ${script} ${args}"
	argv, err := substitute(tmpl, "/home/user/.gisht/bin/xkcdab", []string{"hello world", "--flag"})
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}
	want := []string{"sh", "--", "/home/user/.gisht/bin/xkcdab", "hello world", "--flag"}
	if len(argv) != len(want) {
		t.Fatalf("got %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestSubstituteWithNoArgs(t *testing.T) {
	argv, err := substitute("python ${script} - ${args}", "/bin/s", nil)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}
	if strings.Join(argv, " ") != "python /bin/s -" {
		t.Errorf("got %q", strings.Join(argv, " "))
	}
}

func TestSubstituteRejectsUnbalancedQuoting(t *testing.T) {
	_, err := substitute(`sh -- ${script} 'unterminated`, "/bin/s", nil)
	if err == nil {
		t.Fatal("expected an error for unbalanced quoting")
	}
}
