//go:build js && wasm

package debug

import (
	"fmt"
	"syscall/js"

	"github.com/rs/zerolog"
)

// SetLogger is a no-op; wasm builds always log to the browser console.
func SetLogger(l zerolog.Logger) {}

// Log writes to the browser console.
func Log(format string, args ...any) {
	js.Global().Get("console").Call("debug", fmt.Sprintf(format, args...))
}
