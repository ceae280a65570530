package networks

var Devnet Network = NewDevnet()

func NewDevnet() *GenericSuiNetwork {
	return NewGenericSuiNetwork(GenericSuiNetworkConfig{
		Name:             "devnet",
		AlternativeNames: []string{},
		PackageID:        "0x934d8f9692960e531316df8a66541cdbe6351649ae6ea464ad4d51b9779bbac1",
		RegistryID:       "0x7d39132a20a53d9758cfcaca344e3a37aebfa0f639ff5c5e7ba4207aa193c385",
		NodeVariableName: "SUI_DEVNET_NODE",
		DefaultNodes: map[string]string{
			"mysten-devnet": "https://fullnode.devnet.sui.io:443",
		},
	})
}
