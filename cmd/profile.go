package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/config"
	"github.com/tranvictor/suiprofile/util"
)

func resolveProfiles(ctx context.Context, addresses []string) (map[string]*common.Profile, error) {
	logger := newLogger()
	m, err := newManager(ctx, logger)
	if err != nil {
		return nil, err
	}
	profiles, err := m.GetProfiles(ctx, addresses, !config.NoCache)
	if err != nil {
		return nil, err
	}
	if err := m.PersistCache(); err != nil {
		// the lookup itself succeeded
		logger.Warn().Err(err).Msg("profiles were not cached")
	}
	return profiles, nil
}

func scanAddresses(args []string) ([]string, error) {
	addresses := util.ScanForAddresses(strings.Join(args, " "))
	if len(addresses) == 0 {
		return nil, fmt.Errorf("couldn't find any addresses in the params")
	}
	return addresses, nil
}

var getCmd = &cobra.Command{
	Use:   "get [addresses...]",
	Short: "Show the profiles of one or multiple addresses",
	Long: `Addresses can be separated by spaces, commas or anything that is not a
hex digit. Addresses without a profile are shown as "no profile".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addresses, err := scanAddresses(args)
		if err != nil {
			return err
		}
		u := newUI()
		stop := func() {}
		if !config.JSONOutput {
			stop = u.Spinner(fmt.Sprintf("Resolving %d address(es) on %s...", len(addresses), config.Network))
		}
		profiles, err := resolveProfiles(cmd.Context(), addresses)
		stop()
		if err != nil {
			return err
		}
		if config.JSONOutput {
			return u.JSON(util.ProfileDisplays(addresses, profiles))
		}
		util.DisplayProfiles(u, addresses, profiles)
		return nil
	},
}

var hasCmd = &cobra.Command{
	Use:   "has [address]",
	Short: "Check whether an address has a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !util.IsAddress(args[0]) {
			return fmt.Errorf("%q is not a Sui address", args[0])
		}
		profiles, err := resolveProfiles(cmd.Context(), args)
		if err != nil {
			return err
		}
		has := profiles[args[0]] != nil

		u := newUI()
		if config.JSONOutput {
			return u.JSON(map[string]any{"address": args[0], "hasProfile": has})
		}
		if has {
			u.Success("%s has a profile: %s", args[0], profiles[args[0]].Name)
		} else {
			u.Warn("%s has no profile", args[0])
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{getCmd, hasCmd} {
		c.Flags().BoolVarP(&config.NoCache, "no-cache", "n", false, "Look the addresses up again even if they are cached.")
		c.Flags().IntVar(&config.CacheSize, "cache-size", 0, "Maximum number of cached addresses. 0 means no limit.")
		rootCmd.AddCommand(c)
	}
}
