package config

import (
	"github.com/namsral/flag"
)

type Config struct {
	LogLevel   string
	ListenAddr string

	// DictionaryPath points at either a plain word list (.txt) or a sqlite
	// lexicon database (.db).
	DictionaryPath string

	DBConnUri        string
	DBMigrationsPath string

	SecretKey string

	SolverWorkers   int
	SolverBatchSize uint64
}

// Load loads the configs from the given arguments
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("solvesrv", flag.ContinueOnError)

	fs.StringVar(&c.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&c.ListenAddr, "listen-addr", ":8190", "address to listen on")
	fs.StringVar(&c.DictionaryPath, "dictionary-path", "./data/words.txt", "word list file or sqlite lexicon db")
	fs.StringVar(&c.DBConnUri, "db-conn-uri", "", "postgres connection URI for run history; empty disables persistence")
	fs.StringVar(&c.DBMigrationsPath, "db-migrations-path", "file://db/migrations", "migrations source for the run history db")
	fs.StringVar(&c.SecretKey, "secret-key", "", "HMAC secret for API tokens")
	fs.IntVar(&c.SolverWorkers, "solver-workers", 0, "solver worker count; 0 uses all CPUs")
	fs.Uint64Var(&c.SolverBatchSize, "solver-batch-size", 0, "solver batch size; 0 uses the default")
	err := fs.Parse(args)
	return err
}
