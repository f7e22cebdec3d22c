package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/snake/client/terminal"
	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/gdamore/tcell/v2"
)

func main() {
	logLevel := flag.String("log-level", "error", "Log level")
	logFile := flag.String("log-file", "snake.log", "File to write logs to, the terminal is taken by the game")
	tickInterval := flag.Duration("tick-interval", constants.DefaultTickInterval, "Time between two ticks")
	seed := flag.Uint64("seed", 0, "Food placement seed, 0 for a time based seed")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	out, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(fmt.Sprintf("Failed to open log file: %v", err))
	}
	defer out.Close()

	logger := log.New(out, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting terminal client version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connStr := os.Getenv("SNAKE_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://snake.db"
	}
	store, err := repositories.Open(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to open best score store: %v", err))
	}
	defer store.Close(context.Background())

	persistence := scores.NewPersistence(store, constants.BestScoreKey)
	bestScore := scores.NewTracker(persistence.Load(ctx))

	saveBestScoreChan := make(chan workers.SaveBestScoreRequest, constants.SaveBestScoreChannelSize)
	saveBestScoreWorker := workers.NewSaveBestScoreWorker(workers.NewSaveBestScoreWorkerOptions{
		Saver:             persistence,
		SaveBestScoreChan: saveBestScoreChan,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		saveBestScoreWorker.Start(context.Background())
	}()

	var foodSpawner *game.FoodSpawner
	if *seed != 0 {
		foodSpawner = game.NewSeededFoodSpawner(*seed)
	}
	manager := game.NewGameManager(game.NewGameManagerOptions{
		FoodSpawner:       foodSpawner,
		BestScore:         bestScore,
		SaveBestScoreChan: saveBestScoreChan,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		panic(fmt.Sprintf("Failed to create screen: %v", err))
	}
	if err := screen.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize screen: %v", err))
	}
	screen.HideCursor()

	app := terminal.NewApp(terminal.NewAppOptions{
		Screen:       screen,
		Manager:      manager,
		TickInterval: *tickInterval,
	})
	runErr := app.Run(ctx)
	screen.Fini()

	// the loop is stopped, so nothing sends anymore: let the worker save what is queued
	close(saveBestScoreChan)
	<-workerDone
	if runErr != nil {
		panic(fmt.Sprintf("Failed to run game: %v", runErr))
	}
	log.Info("Best score %d", bestScore.Best())
}
