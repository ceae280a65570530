package networks

import (
	"encoding/json"
	"os"
	"strings"
)

type GenericSuiNetworkConfig struct {
	Name             string            `json:"name" yaml:"name"`
	AlternativeNames []string          `json:"alternative_names" yaml:"alternative_names"`
	PackageID        string            `json:"package_id" yaml:"package_id"`
	RegistryID       string            `json:"registry_id" yaml:"registry_id"`
	NodeVariableName string            `json:"node_variable_name" yaml:"node_variable_name"`
	DefaultNodes     map[string]string `json:"default_nodes" yaml:"default_nodes"`
}

// GenericSuiNetwork is a deployment of the profile package on a Sui network
// described entirely by its config.
type GenericSuiNetwork struct {
	config GenericSuiNetworkConfig
}

func NewGenericSuiNetwork(config GenericSuiNetworkConfig) *GenericSuiNetwork {
	if config.AlternativeNames == nil {
		config.AlternativeNames = []string{}
	}
	if config.DefaultNodes == nil {
		config.DefaultNodes = map[string]string{}
	}
	return &GenericSuiNetwork{config: config}
}

func (gn *GenericSuiNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericSuiNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericSuiNetwork) GetPackageID() string {
	return gn.config.PackageID
}

func (gn *GenericSuiNetwork) GetRegistryID() string {
	return gn.config.RegistryID
}

func (gn *GenericSuiNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericSuiNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericSuiNetwork) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(gn.config, "", "  ")
}

// GetNodes returns the default nodes of network plus the node set in its
// node variable, if any, under the name "custom-node".
func GetNodes(network Network) map[string]string {
	nodes := map[string]string{}
	for name, url := range network.GetDefaultNodes() {
		nodes[name] = url
	}
	if network.GetNodeVariableName() == "" {
		return nodes
	}
	customNode := strings.Trim(os.Getenv(network.GetNodeVariableName()), " ")
	if customNode != "" {
		nodes["custom-node"] = customNode
	}
	return nodes
}
