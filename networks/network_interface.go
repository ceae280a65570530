package networks

type Network interface {
	GetName() string
	GetAlternativeNames() []string

	// GetPackageID is the default address of the polymedia_profile package.
	GetPackageID() string
	// GetRegistryID is the default profile registry object.
	GetRegistryID() string

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	MarshalJSON() ([]byte, error)
}
