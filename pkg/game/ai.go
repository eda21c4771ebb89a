package game

// Agent はゲーム用エージェント (人間または AI) のインターフェース
type Agent interface {
	Name() string
	// side として b に置く列を返す。盤面は元のまま返すこと
	SelectMove(b *Board, side Side) (int, error)
}
