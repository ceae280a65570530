package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v2"
)

// Insert more Network implementation here to support
// more deployments
var supportedNetworks = []Network{
	Localnet,
	Devnet,
	Testnet,
}

var (
	NETWORKS_DIR string = filepath.Join(getHomeDir(), ".suiprofile", "networks")

	ErrNetworkNotFound = fmt.Errorf("network not found")

	globalSupportedNetworks = newSupportedNetworks()
)

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return os.TempDir()
	}
	return usr.HomeDir
}

type networks struct {
	mu       sync.RWMutex
	networks map[string]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	res, found := n.networks[name]
	n.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("network name '%s'%s: %w", name, n.suggest(name), ErrNetworkNotFound)
	}
	return res, nil
}

// suggest returns a " (did you mean ...)" hint built from the supported
// names that fuzzily match name, or an empty string.
func (n *networks) suggest(name string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(name, n.getSupportedNetworkNames())
	if len(matches) == 0 {
		return ""
	}
	candidates := []string{}
	for i, m := range matches {
		if i == 3 {
			break
		}
		candidates = append(candidates, m.Str)
	}
	return fmt.Sprintf(" (did you mean: %s?)", strings.Join(candidates, ", "))
}

func (n *networks) add(network Network, override bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	if !override {
		for _, name := range names {
			if _, found := n.networks[name]; found {
				return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
			}
		}
	}
	for _, name := range names {
		n.networks[name] = network
	}
	return nil
}

func newSupportedNetworks() *networks {
	result := &networks{networks: map[string]Network{}}
	for _, n := range supportedNetworks {
		if err := result.add(n, false); err != nil {
			panic(err)
		}
	}

	// load custom networks from ~/.suiprofile/networks/
	customNetworks, err := loadCustomNetworks(NETWORKS_DIR)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to load custom networks: %s. Ignore and continue with built-in networks.\n", err)
		return result
	}
	for _, n := range customNetworks {
		// custom networks take precedence over the built-in ones
		result.add(n, true)
	}
	return result
}

func loadCustomNetworks(dir string) ([]Network, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse network from file %s: %s. Ignore and continue with other custom networks.\n", file, err)
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericSuiNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	return newNetworkFromConfig(networkConfig)
}

// NewNetworkFromYAML accepts the same fields as NewNetworkFromJSON.
func NewNetworkFromYAML(content []byte) (Network, error) {
	networkConfig := GenericSuiNetworkConfig{}
	if err := yaml.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	return newNetworkFromConfig(networkConfig)
}

func newNetworkFromConfig(networkConfig GenericSuiNetworkConfig) (Network, error) {
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config is missing a name")
	}
	if networkConfig.PackageID == "" || networkConfig.RegistryID == "" {
		return nil, fmt.Errorf("network config '%s' must set both package_id and registry_id", networkConfig.Name)
	}
	return NewGenericSuiNetwork(networkConfig), nil
}

func GetSupportedNetworks() []Network {
	globalSupportedNetworks.mu.RLock()
	defer globalSupportedNetworks.mu.RUnlock()
	seen := map[string]bool{}
	res := []Network{}
	for _, n := range globalSupportedNetworks.networks {
		if seen[n.GetName()] {
			continue
		}
		seen[n.GetName()] = true
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetName() < res[j].GetName() })
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}

// AddNetwork registers network for this process and stores it in
// NETWORKS_DIR so later runs pick it up.
func AddNetwork(network Network, override bool) error {
	if err := globalSupportedNetworks.add(network, override); err != nil {
		return err
	}

	if err := os.MkdirAll(NETWORKS_DIR, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", NETWORKS_DIR, err)
	}
	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}
	err = os.WriteFile(filepath.Join(NETWORKS_DIR, fmt.Sprintf("%s.json", network.GetName())), content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}
	return nil
}
