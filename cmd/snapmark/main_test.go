package main

import (
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != 0 {
		t.Fatalf("exitCode(nil) = %d, want 0", got)
	}
	if got := exitCode(&UsageError{}); got != 2 {
		t.Fatalf("usage error exit code = %d, want 2", got)
	}
	if got := exitCode(fmt.Errorf("decode: bad header")); got != 1 {
		t.Fatalf("runtime error exit code = %d, want 1", got)
	}
	wrapped := fmt.Errorf("mark: %w", &UsageError{})
	if got := exitCode(wrapped); got != 2 {
		t.Fatalf("wrapped usage error exit code = %d, want 2", got)
	}
}
