package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	clientgame "github.com/cbodonnell/snake/client/game"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/client/storage"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	debug := flag.Bool("debug", false, "Show debug overlay")
	seed := flag.Uint64("seed", 0, "Food placement seed, 0 for a time based seed")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connStr := os.Getenv("SNAKE_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://snake.db"
	}
	store, err := storage.Open(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to open best score store: %v", err))
	}
	defer store.Close(ctx)

	persistence := scores.NewPersistence(store, constants.BestScoreKey)
	bestScore := scores.NewTracker(persistence.Load(ctx))
	log.Info("Loaded best score %d", bestScore.Best())

	saveBestScoreChan := make(chan workers.SaveBestScoreRequest, constants.SaveBestScoreChannelSize)
	saveBestScoreWorker := workers.NewSaveBestScoreWorker(workers.NewSaveBestScoreWorkerOptions{
		Saver:             persistence,
		SaveBestScoreChan: saveBestScoreChan,
	})
	go saveBestScoreWorker.Start(ctx)

	var gameSeed *uint64
	if *seed != 0 {
		gameSeed = seed
	}
	g, err := clientgame.NewGame(clientgame.NewGameOptions{
		Debug:             *debug,
		BestScore:         bestScore,
		SaveBestScoreChan: saveBestScoreChan,
		Seed:              gameSeed,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(objects.ScreenWidth, objects.ScreenHeight)
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
