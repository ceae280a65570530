package config

var Network string

var (
	PackageID  string
	RegistryID string

	RateLimit float64

	NoCache    bool
	CacheSize  int
	JSONOutput bool
	Verbose    bool
)
