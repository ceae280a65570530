package profile

import (
	"github.com/rs/zerolog"

	"github.com/tranvictor/suiprofile/common"
)

const (
	// LookupBatchSize is the number of addresses sent in one get_profiles
	// inspection.
	LookupBatchSize = 30
	// ObjectBatchSize is the maximum number of ids sui_multiGetObjects
	// accepts.
	ObjectBatchSize = 50

	// InspectSender is the sender used for dev-inspected calls. It does
	// not need to own anything.
	InspectSender = "0x7777777777777777777777777777777777777777777777777777777777777777"

	moduleName               = "profile"
	createProfileEventSuffix = "::profile::EventCreateProfile"
)

// Config holds what a Manager needs. Only Network and Codec are required.
type Config struct {
	// Network is one of the names known by the networks package.
	Network string
	// PackageID and RegistryID override the network defaults.
	PackageID  string
	RegistryID string

	// Reader defaults to a reader over the network's nodes.
	Reader common.QueryClient
	Codec  common.Codec
	Logger *zerolog.Logger

	LookupBatchSize int
	ObjectBatchSize int

	// CacheSize bounds the cache (LRU). 0 means unbounded.
	CacheSize int
	// CacheFile, if set, is loaded at construction and written by
	// PersistCache.
	CacheFile string

	// KeepFetchGaps leaves addresses whose profile object could not be
	// fetched out of the result instead of reporting them as nil.
	KeepFetchGaps bool
}

func (c Config) withDefaults() Config {
	if c.LookupBatchSize <= 0 {
		c.LookupBatchSize = LookupBatchSize
	}
	if c.ObjectBatchSize <= 0 {
		c.ObjectBatchSize = ObjectBatchSize
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}
