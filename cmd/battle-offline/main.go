package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/antonio-cesaria/connect-four/pkg/ai/alphabeta"
	"github.com/antonio-cesaria/connect-four/pkg/ai/heuristic"
	"github.com/antonio-cesaria/connect-four/pkg/ai/mcts"
	"github.com/antonio-cesaria/connect-four/pkg/ai/random"
	"github.com/antonio-cesaria/connect-four/pkg/game"
	"github.com/antonio-cesaria/connect-four/pkg/game/debug"
)

// 対戦タスクの構造体
type battleTask struct {
	gameIndex int
	seed      int64
}

// 対戦結果の構造体
type battleResult struct {
	gameIndex int
	winner    game.Side
	moves     int
	err       error
}

type options struct {
	depth       int
	samples     int
	opponent    string
	simulations int
}

// エンジンを AI、指定した相手を PLAYER として生成する
// エンジンは並行利用できないので対戦ごとに作る
func newAgents(opts options, seed int64) (game.Agent, game.Agent, error) {
	config := alphabeta.DefaultConfig()
	config.Depth = opts.depth
	config.Samples = opts.samples
	engine := alphabeta.New(config, game.NewRand(seed)).WithLogger(log.Logger)

	switch opts.opponent {
	case "random":
		return random.New(game.NewRand(seed + 1)), engine, nil
	case "engine":
		return alphabeta.New(config, game.NewRand(seed+1)), engine, nil
	case "heuristic":
		return alphabeta.NewWithEvaluator(config, heuristic.New(), game.NewRand(seed+1)), engine, nil
	case "mcts":
		return mcts.New(opts.simulations, game.NewRand(seed+1)), engine, nil
	default:
		return nil, nil, fmt.Errorf("unknown opponent %q", opts.opponent)
	}
}

// ワーカー関数
func worker(id int, opts options, tasks <-chan battleTask, results chan<- battleResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		player, ai, err := newAgents(opts, task.seed)
		if err != nil {
			results <- battleResult{gameIndex: task.gameIndex, err: err}
			continue
		}
		first := game.RandomFirst(game.NewRand(task.seed + 2))
		result, err := game.NewGameRunner(player, ai).Run(first)
		results <- battleResult{
			gameIndex: task.gameIndex,
			winner:    result.Winner,
			moves:     len(result.Moves),
			err:       err,
		}
		log.Debug().Int("game", task.gameIndex).Int("worker", id).Str("winner", result.Winner.String()).Msg("game finished")
	}
}

func main() {
	// コマンドライン引数の解析
	games := flag.Int("games", 10, "number of games to play")
	numWorkers := flag.Int("workers", runtime.NumCPU(), "number of workers")
	depth := flag.Int("depth", alphabeta.MINMAX_DEEP, "engine search depth")
	samples := flag.Int("samples", alphabeta.DefaultConfig().Samples, "Monte-Carlo playouts per frontier position")
	opponent := flag.String("opponent", "random", "PLAYER side: random, engine, heuristic or mcts")
	simulations := flag.Int("simulations", 1000, "playouts per move for the mcts opponent")
	seed := flag.Int64("seed", 1, "base random seed")
	profileDir := flag.String("profile", "", "write a CPU profile to this directory")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	debug.SetLogger(log.Logger)

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.NoShutdownHook).Stop()
	}

	opts := options{depth: *depth, samples: *samples, opponent: *opponent, simulations: *simulations}
	if _, _, err := newAgents(opts, *seed); err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}
	if *numWorkers < 1 {
		*numWorkers = 1
	}

	log.Info().Int("games", *games).Int("workers", *numWorkers).Str("opponent", *opponent).Msg("starting battles")

	// チャネルの作成
	tasks := make(chan battleTask, *games)
	results := make(chan battleResult, *games)

	// ワーカープールの作成
	var wg sync.WaitGroup
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(i, opts, tasks, results, &wg)
	}

	// タスクの送信
	go func() {
		for i := 0; i < *games; i++ {
			tasks <- battleTask{gameIndex: i, seed: *seed + int64(i)*3}
		}
		close(tasks)
	}()

	// 結果の収集
	wins := map[game.Side]int{}
	totalMoves := 0
	for i := 0; i < *games; i++ {
		result := <-results
		if result.err != nil {
			log.Error().Err(result.err).Int("game", result.gameIndex).Msg("game failed")
			continue
		}
		wins[result.winner]++
		totalMoves += result.moves
	}

	// すべてのワーカーの終了を待つ
	wg.Wait()

	avg := 0.0
	if *games > 0 {
		avg = float64(totalMoves) / float64(*games)
	}
	fmt.Printf("AI (engine): %d, PLAYER (%s): %d, draws: %d, average length: %.1f moves\n",
		wins[game.AI], *opponent, wins[game.Player], wins[game.Empty], avg)
}
