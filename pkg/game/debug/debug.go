//go:build !(js && wasm)

package debug

import "github.com/rs/zerolog"

// SetLogger が呼ばれるまでは何も出力しない
var logger = zerolog.Nop()

// SetLogger はデバッグ出力先を設定する。ゲーム開始前に呼ぶこと
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Log はデバッグレベルで1行出力する
func Log(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}
