// Command server exposes the solver over HTTP and WebSocket: clients
// create a solving session, fetch guesses, submit oracle feedback and
// browse finished-game records. Player accounts live in postgres;
// session snapshots optionally persist to redis across restarts.
package main

import (
	"context"
	"embed"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/mastermind-solver/internal/config"
	"github.com/vancomm/mastermind-solver/internal/database"
)

//go:embed migrations
var migrations embed.FS

var (
	log = logrus.New()

	pg       *postgres
	sessions *sessionStore

	jwtConfig *config.JWT
	cookies   *config.Cookies
	ws        *config.WebSocket
)

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	logFile, ok := os.LookupEnv("APP_LOG_FILE")
	if !ok {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create file log hook: ", err)
	}
	log.AddHook(hook)
}

func setupPostgres(ctx context.Context) {
	pool, _, err := database.ConnectAndMigrate(ctx, migrations)
	if err != nil {
		log.Fatal("unable to connect and migrate database: ", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal("unable to ping database: ", err)
	}
	pg = &postgres{db: pool}
}

func setupAuth() {
	var err error
	if jwtConfig, err = config.NewJWT(); err != nil {
		log.Fatal("unable to read jwt config: ", err)
	}
	if cookies, err = config.NewCookies(); err != nil {
		log.Fatal("unable to read cookies config: ", err)
	}
}

func setupSessions(ctx context.Context) {
	sessions = newSessionStore()
	if redisConfig, ok := config.NewRedis(); ok {
		client := redisConfig.Client()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("unable to ping redis: ", err)
		}
		sessions.snapshots = newRedisSnapshotStore(client, redisConfig.TTL)
		log.Info("session snapshots enabled @ ", redisConfig.Addr)
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal("unable to load .env: ", err)
	}

	setupLogging()
	log.Info("starting up, development = ", config.Development())

	setupPostgres(mainCtx)
	defer pg.Close()

	setupAuth()
	setupSessions(mainCtx)

	var err error
	if ws, err = config.NewWebSocket(); err != nil {
		log.Fatal("unable to read websocket config: ", err)
	}

	addr := config.Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: buildHandler(),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
