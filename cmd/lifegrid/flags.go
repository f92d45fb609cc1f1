package main

import (
	"github.com/sandeepkv93/lifegrid/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configPath  string
	storageFlag string
	dataFlag    string
	logFlag     string
	notifyFlag  bool
)

func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to config.toml")
	flags.StringVar(&storageFlag, "storage", "", "Storage backend: sqlite, json or memory")
	flags.StringVar(&dataFlag, "data", "", "Path to the data file")
	flags.StringVar(&logFlag, "log", "", "Path to the log file")
	flags.BoolVar(&notifyFlag, "notify", false, "Send desktop notifications when alarms fire")
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

// loadConfig layers command-line flags over the file and environment.
func loadConfig(cmd *cobra.Command) (config.RuntimeConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	if hasChangedFlags(cmd, "storage") {
		cfg = cfg.WithStorage(storageFlag)
	}
	if hasChangedFlags(cmd, "data") {
		cfg = cfg.WithDataPath(dataFlag)
	}
	if hasChangedFlags(cmd, "log") {
		cfg.LogPath = logFlag
	}
	if hasChangedFlags(cmd, "notify") {
		cfg.DesktopNotifications = notifyFlag
	}
	return cfg, nil
}
