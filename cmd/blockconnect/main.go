package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/blockconnect/internal/health"
	"github.com/Decentr-net/blockconnect/internal/ledger/stub"
	"github.com/Decentr-net/blockconnect/internal/server"
	"github.com/Decentr-net/blockconnect/internal/service/impl"
	"github.com/Decentr-net/blockconnect/internal/storage"
	"github.com/Decentr-net/blockconnect/internal/storage/memory"
	"github.com/Decentr-net/blockconnect/internal/storage/postgres"
	"github.com/Decentr-net/blockconnect/internal/storage/sqlite"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections"`
	RequestTimeout time.Duration `long:"http.request_timeout" env:"HTTP_REQUEST_TIMEOUT" default:"10s" description:"request processing timeout"`

	Storage string `long:"storage" env:"STORAGE" default:"memory" description:"slot storage backend" choice:"memory" choice:"sqlite" choice:"postgres"`
	SQLite  string `long:"sqlite" env:"SQLITE" default:"blockconnect.db" description:"sqlite database file"`

	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	AdminToken string `long:"admin.token" env:"ADMIN_TOKEN" description:"bearer token for operator routes, operator routes are disabled when empty"`

	LedgerConnectDelay time.Duration `long:"ledger.connect_delay" env:"LEDGER_CONNECT_DELAY" default:"1s" description:"simulated wallet connection latency"`

	LogLevel string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Fatal("failed to load .env file")
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "BlockConnect"
	parser.LongDescription = "BlockConnect social network service"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	o := opts
	o.AdminToken = strings.Repeat("*", len(o.AdminToken))
	logrus.Infof("%+v", o)

	kv := mustGetKV()
	s := storage.New(kv)
	l := stub.New(opts.LedgerConnectDelay)

	r := chi.NewMux()
	r.Get("/health", health.Handler(
		5*time.Second,
		health.SubjectPinger(opts.Storage, s.Ping),
		l,
	))
	server.SetupRouter(impl.New(s, l), r, opts.RequestTimeout, opts.AdminToken)

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: r,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gr, ctx := errgroup.WithContext(ctx)
	gr.Go(srv.ListenAndServe)
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		select {
		case s := <-sigs:
			logrus.Infof("terminating by %s signal", s)
		case <-ctx.Done():
		}

		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()

		if err := srv.Shutdown(sctx); err != nil {
			logrus.WithError(err).Error("failed to shutdown http server")
		}

		return errTerminated
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}
}

func mustGetKV() storage.KV {
	switch opts.Storage {
	case "sqlite":
		kv, err := sqlite.New(opts.SQLite)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open sqlite storage")
		}
		return kv
	case "postgres":
		return postgres.New(mustGetDB())
	default:
		return memory.New()
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	if err := postgres.Migrate(db, opts.PostgresMigrations); err != nil {
		logrus.WithError(err).Fatal("failed to migrate postgres")
	}

	return db
}
