//go:build !(js && wasm)

package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogSilentUntilSetLogger(t *testing.T) {
	if logger.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected a disabled default logger, got level %s", logger.GetLevel())
	}

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer SetLogger(zerolog.Nop())

	Log("Selected column %d", 3)
	if !strings.Contains(buf.String(), "Selected column 3") {
		t.Fatalf("expected the line in the logger output, got %q", buf.String())
	}
}
