package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/muurk/dfplayer/internal/config"
	"github.com/muurk/dfplayer/internal/ui"
)

// Config command flags
var (
	initForce     bool
	portNickname  string
	portVolume    int
	portAsDefault bool
)

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing configuration file (asks for confirmation)")

	configSetPortCmd.Flags().StringVar(&portNickname, "nickname", "", "Nickname usable in place of the port name")
	configSetPortCmd.Flags().IntVar(&portVolume, "volume", -1, "Volume (0-30) applied whenever the port is opened")
	configSetPortCmd.Flags().BoolVar(&portAsDefault, "default", false, "Use this port when --port is not given")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetPortCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			if !initForce {
				return fmt.Errorf("config file already exists: %s (use --force to replace it)", path)
			}
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("refusing to replace %s without a terminal to confirm", path)
			}
			if !ui.ConfirmOverwrite(os.Stdin, os.Stdout, path) {
				return nil
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old config: %w", err)
			}
		}

		if configFile != "" {
			err = config.WriteDefaultConfig(path)
		} else {
			path, err = config.CreateDefaultConfig()
		}
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("# %s does not exist; showing defaults\n", path)
		} else {
			fmt.Printf("# %s\n", path)
		}

		data, err := yaml.Marshal(registry)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configSetPortCmd = &cobra.Command{
	Use:   "set-port <port>",
	Short: "Set nickname, default volume or default port",
	Example: `  dfplayer config set-port /dev/ttyUSB0 --nickname kitchen --volume 18 --default
  dfplayer monitor --port kitchen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := registry.ResolvePort(args[0])
		flags := cmd.Flags()

		if !flags.Changed("nickname") && !flags.Changed("volume") && !portAsDefault {
			return fmt.Errorf("nothing to set (use --nickname, --volume or --default)")
		}
		if flags.Changed("nickname") {
			registry.SetPortNickname(port, portNickname)
		}
		if flags.Changed("volume") {
			if portVolume < 0 || portVolume > 255 {
				return fmt.Errorf("default volume %d out of range (0-30)", portVolume)
			}
			if err := registry.SetDefaultVolume(port, uint8(portVolume)); err != nil {
				return err
			}
		}
		if portAsDefault {
			registry.Serial.Port = port
		}

		if err := saveRegistry(); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", registry.DisplayName(port))
		return nil
	},
}
