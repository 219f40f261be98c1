// Dfplayer drives a DFPlayer Mini MP3 module over a serial port.
//
// It can watch the events the module reports, send single commands, decode
// captured byte streams offline, run an interactive controller, and bridge
// the serial link to websocket clients on the local network.
//
// Usage:
//
//	dfplayer [command] [flags]
//
// See 'dfplayer --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/dfplayer/internal/config"
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	portName   string
	baudRate   int
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
)

// registry is loaded before any subcommand runs
var registry *config.Registry

var rootCmd = &cobra.Command{
	Use:   "dfplayer",
	Short: "DFPlayer Mini serial driver and tools",
	Long: `Control a DFPlayer Mini MP3 module over a 9600 baud serial link.

The serial port defaults to serial.port from the configuration file; pass
--port to override it. Port nicknames set with 'dfplayer config set-port'
are accepted wherever a port name is.

Logging is silent unless a level is set with --log-level, the
DFPLAYER_LOG_LEVEL environment variable, or logging.level in the
configuration file (in that order of precedence).`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port or port nickname (default from config)")
	rootCmd.PersistentFlags().IntVar(&baudRate, "baud", config.DefaultBaudRate, "Serial baud rate")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (default is the user config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file, rotated")

	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and initializes logging. Flags override the
// environment, which overrides the configuration file.
func setup(cmd *cobra.Command) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	registry = reg

	logCfg := reg.LoggingOptions()
	if env := os.Getenv(logging.LogLevelEnvVar); env != "" {
		logCfg.Level = env
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		logCfg.Level = logLevel
	}
	if flags.Changed("log-format") {
		logCfg.Format = logFormat
	}
	if flags.Changed("log-file") {
		logCfg.File.Filename = logFile
		if logCfg.File.MaxSizeMB == 0 {
			logCfg.File.MaxSizeMB = config.DefaultLogMaxSizeMB
		}
		if logCfg.File.MaxBackups == 0 {
			logCfg.File.MaxBackups = config.DefaultLogMaxBackups
		}
	}
	if !flags.Changed("baud") && reg.Serial.BaudRate != 0 {
		baudRate = reg.Serial.BaudRate
	}

	if err := logging.InitializeWithConfig(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

func loadRegistry() (*config.Registry, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.LoadRegistry()
}

// configPath returns --config or the default configuration file path
func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigPath()
}

// saveRegistry writes the registry back to where it was loaded from
func saveRegistry() error {
	if configFile != "" {
		return registry.SaveFile(configFile)
	}
	return registry.Save()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Line("dfplayer"))
	},
}
