package networks

var Localnet Network = NewLocalnet()

func NewLocalnet() *GenericSuiNetwork {
	return NewGenericSuiNetwork(GenericSuiNetworkConfig{
		Name:             "localnet",
		AlternativeNames: []string{"local"},
		PackageID:        "0x419ced1b0d9c8c56660ab0d446cd3a65571cbaf9d2a50d663ca22e1cdc8b33ca",
		RegistryID:       "0xf764edb4b677b0e1b6a3b40377c69b1ee5b39f546d0e5c0c98823d4e82eafe78",
		NodeVariableName: "SUI_LOCALNET_NODE",
		DefaultNodes: map[string]string{
			"localhost": "http://127.0.0.1:9000",
		},
	})
}
