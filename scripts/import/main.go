package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/blockconnect/internal/storage"
	"github.com/Decentr-net/blockconnect/internal/storage/postgres"
	"github.com/Decentr-net/blockconnect/internal/storage/sqlite"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Dump string `long:"dump" env:"DUMP" default:"localstorage.json" description:"path to local storage dump"`
	Show bool   `long:"show" env:"SHOW" description:"print imported collections"`

	Storage string `long:"storage" env:"STORAGE" default:"sqlite" description:"slot storage backend" choice:"sqlite" choice:"postgres"`
	SQLite  string `long:"sqlite" env:"SQLITE" default:"blockconnect.db" description:"sqlite database file"`

	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "import"
	parser.LongDescription = "Browser local storage dump importer"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("import started")
	logrus.Infof("%+v", opts)

	b, err := os.ReadFile(opts.Dump)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read dump")
	}

	slots, err := storage.ParseDump(b)
	if err != nil {
		logrus.WithError(err).Fatal("failed to parse dump")
	}

	ctx := context.Background()
	kv := mustGetKV()

	if err := storage.Restore(ctx, kv, slots); err != nil {
		logrus.WithError(err).Fatal("failed to restore slots")
	}

	logrus.Infof("%d slots imported", len(slots))

	if opts.Show {
		show(ctx, storage.New(kv))
	}

	logrus.Info("done")
}

func show(ctx context.Context, s storage.Storage) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get users")
	}

	posts, err := s.GetPosts(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get posts")
	}

	communities, err := s.GetCommunities(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get communities")
	}

	spew.Dump(users, posts, communities)
}

func mustGetKV() storage.KV {
	if opts.Storage == "postgres" {
		db, err := sql.Open("postgres", opts.Postgres)
		if err != nil {
			logrus.WithError(err).Fatal("failed to create postgres connection")
		}

		if err := db.PingContext(context.Background()); err != nil {
			logrus.WithError(err).Fatal("failed to ping postgres")
		}

		if err := postgres.Migrate(db, opts.PostgresMigrations); err != nil {
			logrus.WithError(err).Fatal("failed to migrate postgres")
		}

		return postgres.New(db)
	}

	kv, err := sqlite.New(opts.SQLite)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open sqlite storage")
	}

	return kv
}
