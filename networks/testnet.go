package networks

var Testnet Network = NewTestnet()

func NewTestnet() *GenericSuiNetwork {
	return NewGenericSuiNetwork(GenericSuiNetworkConfig{
		Name:             "testnet",
		AlternativeNames: []string{},
		PackageID:        "0x176c277279d99cdd2e8afcf618ba8d6705465cdeabb3bdbe1a7ce020141e67dd",
		RegistryID:       "0xec4c82836bcd537015b252df836cdcd27412f0a581591737cad0b8bfef7241d5",
		NodeVariableName: "SUI_TESTNET_NODE",
		DefaultNodes: map[string]string{
			"mysten-testnet": "https://fullnode.testnet.sui.io:443",
		},
	})
}
