package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayawake/internal/autostart"
)

var flagAutostartTray bool

func init() {
	autostartEnableCmd.Flags().BoolVar(&flagAutostartTray, "tray", false, "Start with the tray icon")

	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd, autostartStatusCmd)
	rootCmd.AddCommand(autostartCmd)
}

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Start StayAwake automatically on login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Register StayAwake as a login item",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := autostart.Enable(autostartArgs(flagAutostartTray)...); err != nil {
			return fmt.Errorf("failed to enable autostart: %w", err)
		}
		return printAutostartStatus(cmd)
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the StayAwake login item",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := autostart.Disable(); err != nil {
			return fmt.Errorf("failed to disable autostart: %w", err)
		}
		return printAutostartStatus(cmd)
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the login item is installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAutostartStatus(cmd)
	},
}

// autostartArgs returns the arguments StayAwake is started with on login
func autostartArgs(withTray bool) []string {
	args := []string{"run"}
	if withTray {
		args = append(args, "--tray")
	}
	return args
}

func printAutostartStatus(cmd *cobra.Command) error {
	enabled, err := autostart.IsEnabled()
	if err != nil {
		return err
	}
	where, err := autostart.Location()
	if err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "autostart %s (%s)\n", state, where)
	return nil
}
