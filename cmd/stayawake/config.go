package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stayawake/internal/config"
)

var (
	flagConfigPath string
	flagForce      bool
)

func init() {
	configCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default: per-user config directory)")
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the StayAwake config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfig(flagConfigPath, flagForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file and environment)",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(flagConfigPath)
		if err != nil {
			return err
		}
		if err := mgr.Load(); err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(mgr.Get()); err != nil {
			return err
		}
		return enc.Close()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(flagConfigPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), mgr.Path())
		return nil
	},
}

// initConfig writes the default configuration to path and returns where it was written
func initConfig(path string, force bool) (string, error) {
	mgr, err := config.NewManager(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(mgr.Path()); err == nil && !force {
		return "", fmt.Errorf("%s already exists, use --force to overwrite", mgr.Path())
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	mgr.Set(config.DefaultConfig())
	if err := mgr.Save(); err != nil {
		return "", fmt.Errorf("failed to save config: %w", err)
	}
	return mgr.Path(), nil
}
