package surrealblocks

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const usage = `subcommand required

Usage: surrealblocks [flags] <command>

Commands:
  run       Start the surrealblocks server
  migrate   Prepare the store schema
  export    Write a document to a JSON file
  import    Save a JSON file as a new document
  catalog   Print the block catalog as JSON

Examples:
  surrealblocks run                                  # SQLite store in ./surrealblocks.db
  surrealblocks -store memory -port 8090 run         # Throwaway in-memory store
  surrealblocks -config surrealblocks.yaml run       # Settings from a YAML file
  SURREALBLOCKS_STORE=postgres surrealblocks migrate
  surrealblocks export -id <document-id> -out ./exports
  surrealblocks import ./exports/mi_documento.json`

// Parse reads flags, an optional YAML file and the environment into a
// Config, and returns the sub-command to run.
//
// Precedence, lowest first: defaults, YAML file, environment, flags set on the
// command line.
func Parse(args []string) (Command, *Config, error) {
	flagSet := flag.NewFlagSet("surrealblocks", flag.ContinueOnError)

	defaults := DefaultConfig()
	var (
		configPath = flagSet.String("config", "", "YAML configuration file")
		storeKind  = flagSet.String("store", defaults.Store, "Store backend: sqlite, memory, postgres or surrealdb")
		sqlitePath = flagSet.String("sqlite-path", defaults.SQLitePath, "SQLite database file")
		port       = flagSet.String("port", defaults.ServerPort, "Server port")
		readOnly   = flagSet.Bool("read-only", defaults.ReadOnly, "Reject every write")
		assetsDir  = flagSet.String("assets-dir", defaults.AssetsDir, "Directory for uploaded files")
		logFile    = flagSet.String("log-file", defaults.LogFile, "Append logs to this file instead of stderr")
		logLevel   = flagSet.String("log-level", defaults.LogLevel, "Minimum log level")
	)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, fmt.Errorf(usage)
	}

	config := DefaultConfig()
	if *configPath != "" {
		if err := loadConfigFile(*configPath, config); err != nil {
			return nil, nil, err
		}
	}
	applyEnv(config)

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			config.Store = *storeKind
		case "sqlite-path":
			config.SQLitePath = *sqlitePath
		case "port":
			config.ServerPort = *port
		case "read-only":
			config.ReadOnly = *readOnly
		case "assets-dir":
			config.AssetsDir = *assetsDir
		case "log-file":
			config.LogFile = *logFile
		case "log-level":
			config.LogLevel = *logLevel
		}
	})

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	cmd, err := parseCommand(remainingArgs[0], remainingArgs[1:])
	if err != nil {
		return nil, nil, err
	}
	return cmd, config, nil
}

func parseCommand(name string, args []string) (Command, error) {
	switch name {
	case "run":
		return &RunCommand{}, nil
	case "migrate":
		return &MigrateCommand{}, nil
	case "catalog":
		return &CatalogCommand{}, nil
	case "export":
		flagSet := flag.NewFlagSet("export", flag.ContinueOnError)
		id := flagSet.String("id", "", "ID of the document to export")
		out := flagSet.String("out", ".", "Directory to write the file to")
		if err := flagSet.Parse(args); err != nil {
			return nil, err
		}
		if *id == "" {
			return nil, fmt.Errorf("export requires -id")
		}
		return &ExportCommand{ID: *id, OutDir: *out}, nil
	case "import":
		if len(args) != 1 {
			return nil, fmt.Errorf("import requires exactly one file argument")
		}
		return &ImportCommand{Path: args[0]}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s\n\nValid commands: run, migrate, export, import, catalog", name)
	}
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Store = getEnv("SURREALBLOCKS_STORE", config.Store)
	config.SQLitePath = getEnv("SURREALBLOCKS_SQLITE_PATH", config.SQLitePath)
	config.AssetsDir = getEnv("SURREALBLOCKS_ASSETS_DIR", config.AssetsDir)

	config.PostgresDSN = getEnv("POSTGRES_DSN", config.PostgresDSN)
	config.SurrealDBURL = getEnv("SURREALDB_URL", config.SurrealDBURL)
	config.SurrealDBNS = getEnv("SURREALDB_NS", config.SurrealDBNS)
	config.SurrealDBDB = getEnv("SURREALDB_DB", config.SurrealDBDB)
	config.SurrealDBUser = getEnv("SURREALDB_USER", config.SurrealDBUser)
	config.SurrealDBPass = getEnv("SURREALDB_PASS", config.SurrealDBPass)

	config.Generation.APIKey = getEnv("OPENAI_API_KEY", config.Generation.APIKey)
	config.Generation.BaseURL = getEnv("OPENAI_BASE_URL", config.Generation.BaseURL)
	config.Generation.Model = getEnv("OPENAI_MODEL", config.Generation.Model)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
