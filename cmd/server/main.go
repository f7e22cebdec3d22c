package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/snake/pkg/api"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/network"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/cbodonnell/snake/pkg/workers"
)

func main() {
	port := flag.Int("port", 8888, "WebSocket port to listen on")
	apiPort := flag.Int("api-port", 9090, "API port to listen on")
	tickInterval := flag.Duration("tick-interval", constants.DefaultTickInterval, "Time between two ticks of a session")
	seed := flag.Uint64("seed", 0, "Food placement seed, 0 for a time based seed")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
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
	log.Info("Loaded best score %d", bestScore.Best())

	saveBestScoreChan := make(chan workers.SaveBestScoreRequest, constants.SaveBestScoreChannelSize)
	saveBestScoreWorker := workers.NewSaveBestScoreWorker(workers.NewSaveBestScoreWorkerOptions{
		Saver:             persistence,
		SaveBestScoreChan: saveBestScoreChan,
	})
	// not tied to the signal context: requests queued at shutdown are still written
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		saveBestScoreWorker.Start(context.Background())
	}()

	stateManager := state.NewInMemoryStateManager()

	var sessionSeed *uint64
	if *seed != 0 {
		sessionSeed = seed
	}
	sessionManager := network.NewSessionManager(network.NewSessionManagerOptions{
		TickInterval:      *tickInterval,
		Seed:              sessionSeed,
		BestScore:         bestScore,
		SaveBestScoreChan: saveBestScoreChan,
		StateManager:      stateManager,
		OutboundQueueSize: network.OutboundQueueSize,
	})

	var wsTLS *network.TLSConfig
	var apiTLS *api.TLSConfig
	tlsCertFile := os.Getenv("SNAKE_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("SNAKE_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		wsTLS = &network.TLSConfig{CertFile: tlsCertFile, KeyFile: tlsKeyFile}
		apiTLS = &api.TLSConfig{CertFile: tlsCertFile, KeyFile: tlsKeyFile}
	}

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *apiPort,
		TLS:          apiTLS,
		BestScore:    bestScore,
		StateManager: stateManager,
	})
	go apiServer.Start()

	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		SessionManager: sessionManager,
		WSPort:         *port,
		WSServerTLS:    wsTLS,
	})

	log.Info("Starting network manager")
	networkManager.Start(ctx)

	// every session loop is stopped, so nothing sends anymore
	close(saveBestScoreChan)
	<-workerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
	log.Info("Server stopped")
}
