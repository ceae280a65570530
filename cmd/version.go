package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/suiprofile/config"
)

const (
	VERSION string = "0.1.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show suiprofile version",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUI()
		if config.JSONOutput {
			return u.JSON(map[string]string{"version": VERSION})
		}
		u.Info("Version: %s", VERSION)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
