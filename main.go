// Package main provides the voicebank CLI, an inspector for concatenative
// voice libraries that only ever talks to them through the splib contract.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unitvox/voicebank/splib"
	"github.com/unitvox/voicebank/splib/backends"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile  string
	backendName string
	cacheBytes  int64

	rootCmd = &cobra.Command{
		Use:          "voicebank",
		Short:        "Inspect concatenative voice libraries",
		Long:         "\nInspect the phoneme inventory, unit metadata and waveform segments of a concatenative voice library.",
		SilenceUsage: true,
	}
)

// envConfig holds settings read from the environment.
type envConfig struct {
	Debug   bool   `env:"VOICEBANK_DEBUG"`
	LogFile string `env:"VOICEBANK_LOG_FILE"`
}

// setupLog configures the logger from the environment and returns a
// closer for the optional log file.
func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return nil, fmt.Errorf("error parsing env config: %w", err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		log.SetOutput(f)
		log.SetReportTimestamp(true)
		log.SetTimeFormat(time.RFC3339)
		return f.Close, nil
	}

	log.SetOutput(os.Stderr)
	return func() error { return nil }, nil
}

// libraryConfig builds the backend configuration for a command invocation:
// viper config first, then flags, then the positional path.
func libraryConfig(path string) (splib.Config, error) {
	cfg, err := splib.LoadConfigFromViper()
	if err != nil {
		return cfg, err
	}
	if backendName != "" {
		cfg.Backend = backendName
	}
	if cacheBytes >= 0 {
		cfg.CacheMaxBytes = cacheBytes
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openLibrary opens the library at path through the configured backend.
// The caller terminates it.
func openLibrary(path string) (splib.Accessor, error) {
	cfg, err := libraryConfig(path)
	if err != nil {
		return nil, err
	}
	lib, err := backends.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to open voice library: %w", err)
	}
	return lib, nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "", "library backend (dir, badger)")
	rootCmd.PersistentFlags().Int64Var(&cacheBytes, "cache-bytes", -1, "wave cache size in bytes (0 disables)")

	_ = viper.BindPFlag("library.backend", rootCmd.PersistentFlags().Lookup("backend"))

	splib.SetDefaults()

	rootCmd.AddCommand(infoCmd, phonemesCmd, unitsCmd, exportCmd, playCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "voicebank")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "voicebank")}, dirs...)
	}

	if c := os.Getenv("VOICEBANK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("voicebank")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("voicebank")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "voicebank.yml")
	}
}
