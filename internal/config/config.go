// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional .env file, an
// optional JSON config file and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the connection string of the remote store.
	DatabaseDSN string

	// LogLevel sets the zap log level.
	LogLevel string

	// SuperAdminUser is the hardcoded super-admin username.
	SuperAdminUser string

	// SuperAdminPass is the hardcoded super-admin password.
	SuperAdminPass string

	// SessionTTLMinutes is the idle session lifetime in minutes.
	SessionTTLMinutes int

	// Config is the path to the JSON config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.SuperAdminUser, "su-user", "mariorocha", "super-admin username")
	flag.StringVar(&options.SuperAdminPass, "su-pass", "28172024", "super-admin password")
	flag.IntVar(&options.SessionTTLMinutes, "session-ttl", 12*60, "idle session TTL in minutes")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional .env and JSON config
// files and environment variables. It returns a pointer to the Options
// struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// A missing .env is fine; values already in the environment win.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}
	if user := os.Getenv("SUPERADMIN_USER"); user != "" {
		options.SuperAdminUser = user
	}
	if pass := os.Getenv("SUPERADMIN_PASS"); pass != "" {
		options.SuperAdminPass = pass
	}

	return options
}
