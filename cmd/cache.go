package cmd

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tranvictor/suiprofile/config"
	"github.com/tranvictor/suiprofile/util"
	"github.com/tranvictor/suiprofile/util/cache"
)

var showCacheCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cached profiles of the selected network",
	RunE: func(cmd *cobra.Command, args []string) error {
		network, err := currentNetwork()
		if err != nil {
			return err
		}
		c := cache.New()
		if err := c.Load(util.CacheFile(network)); err != nil {
			return err
		}
		profiles := c.Snapshot()
		addresses := make([]string, 0, len(profiles))
		for addr := range profiles {
			addresses = append(addresses, addr)
		}
		sort.Strings(addresses)

		u := newUI()
		if config.JSONOutput {
			return u.JSON(util.ProfileDisplays(addresses, profiles))
		}
		if len(addresses) == 0 {
			u.Info("No cached profiles on %s.", network.GetName())
			return nil
		}
		util.DisplayProfiles(u, addresses, profiles)
		return nil
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every cached profile of the selected network",
	RunE: func(cmd *cobra.Command, args []string) error {
		network, err := currentNetwork()
		if err != nil {
			return err
		}
		path := util.CacheFile(network)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		newUI().Success("Cleared %s.", path)
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local profile cache",
}

func init() {
	cacheCmd.AddCommand(showCacheCmd)
	cacheCmd.AddCommand(clearCacheCmd)
	rootCmd.AddCommand(cacheCmd)
}
