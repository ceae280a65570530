package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/suiprofile/config"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/util"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

func readNetworkConfig(configStr string) (networks.Network, error) {
	configStr = strings.TrimSpace(configStr)
	if configStr == "" {
		return nil, fmt.Errorf("--config is required")
	}
	if strings.HasPrefix(configStr, "{") && strings.HasSuffix(configStr, "}") {
		network, err := networks.NewNetworkFromJSON([]byte(configStr))
		if err != nil {
			return nil, fmt.Errorf("the provided json is not valid: %w", err)
		}
		return network, nil
	}

	// in this case, config is supposed to be a path to a json file
	jsonFile, err := os.Open(configStr)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the provided json file: %w", err)
	}
	defer jsonFile.Close()

	content, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the provided json file: %w", err)
	}
	parse := networks.NewNetworkFromJSON
	if ext := strings.ToLower(filepath.Ext(configStr)); ext == ".yaml" || ext == ".yml" {
		parse = networks.NewNetworkFromYAML
	}
	network, err := parse(content)
	if err != nil {
		return nil, fmt.Errorf("the provided json is not a valid network config: %w", err)
	}
	return network, nil
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--config flag is supported to pass a new network config json (or yaml) filepath OR pass a json string. The json should be in the following format:
	{
		"name": "mainnet",
		"alternative_names": ["main"],
		"package_id": "0x...",
		"registry_id": "0x...",
		"node_variable_name": "SUI_MAINNET_NODE",
		"default_nodes": {
			"mysten": "https://fullnode.mainnet.sui.io:443"
		}
	}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		newNetwork, err := readNetworkConfig(NetworkConfig)
		if err != nil {
			return err
		}
		if err := networks.AddNetwork(newNetwork, NetworkForce); err != nil {
			return fmt.Errorf("failed to add the new network: %w. If you want to update the network, use flag --force", err)
		}
		newUI().Success("Network %s added and saved to %s.", newNetwork.GetName(), networks.NETWORKS_DIR)
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUI()
		ns := networks.GetSupportedNetworks()
		if config.JSONOutput {
			return u.JSON(util.NetworkDisplays(ns))
		}
		util.DisplayNetworks(u, ns)
		u.Info("")
		u.Info("If you want to add more networks to the list, use: suiprofile network add")
		u.Info("If you want to delete a network, delete its json file in %s.", networks.NETWORKS_DIR)
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage all networks that suiprofile supports",
}

func init() {
	addNetworkCmd.PersistentFlags().StringVarP(&NetworkConfig, "config", "c", "", "Path to the network config json file, or the json itself")
	addNetworkCmd.PersistentFlags().BoolVarP(&NetworkForce, "force", "f", false, "Replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
