package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rijksuitgaven/roadmap/internal/config"
	"github.com/rijksuitgaven/roadmap/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:           "roadmap",
	Short:         "Compile the product roadmap from its planning documents",
	Long:          "roadmap reads VERSIONING.md and BACKLOG.md and prints the compiled tracks, releases and backlog.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .roadmap.yaml)")
	rootCmd.PersistentFlags().String("versioning", "", "path to VERSIONING.md")
	rootCmd.PersistentFlags().String("backlog", "", "path to BACKLOG.md")
	rootCmd.PersistentFlags().String("tracks", "", "TOML file overriding track names")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log compile details to stderr")
}

func initConfig() {
	_ = viper.BindPFlag("versioning_path", rootCmd.PersistentFlags().Lookup("versioning"))
	_ = viper.BindPFlag("backlog_path", rootCmd.PersistentFlags().Lookup("backlog"))
	_ = viper.BindPFlag("tracks_file", rootCmd.PersistentFlags().Lookup("tracks"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".roadmap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// newLogger logs to stderr so stdout stays machine-readable.
func newLogger(force bool) *slog.Logger {
	if !force && !viper.GetBool("verbose") {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newService builds a compile service from the loaded configuration.
func newService(watch bool) (*pipeline.Service, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	cfg.Watch = cfg.Watch || watch

	loader, err := cfg.Loader()
	if err != nil {
		return nil, cfg, err
	}
	labels, err := config.LoadTrackLabels(cfg.TracksFile)
	if err != nil {
		return nil, cfg, err
	}
	svc := pipeline.NewService(loader, pipeline.Options{
		CacheTTL:   cfg.CacheTTL,
		Labels:     labels,
		WatchFiles: cfg.WatchFiles(),
	}, newLogger(watch))
	return svc, cfg, nil
}
