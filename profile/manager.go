package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/util/cache"
	"github.com/tranvictor/suiprofile/util/reader"
)

// Manager helps you interact with the polymedia_profile Sui package. It
// resolves addresses to profiles through its own cache and builds the
// transactions that create and edit profiles.
//
// A Manager is safe for concurrent use. Two concurrent lookups of the same
// uncached address may both hit the network; the last write wins.
type Manager struct {
	network    networks.Network
	packageID  string
	registryID string

	reader common.QueryClient
	codec  common.Codec

	cache     *cache.ProfileCache
	cacheFile string

	lookupBatchSize int
	objectBatchSize int
	keepFetchGaps   bool

	logger zerolog.Logger
	tracer trace.Tracer
}

func NewManager(config Config) (*Manager, error) {
	config = config.withDefaults()

	network, err := networks.GetNetwork(config.Network)
	if err != nil {
		return nil, &common.ConfigurationError{Network: config.Network, Err: err}
	}
	if config.Codec == nil {
		return nil, &common.ConfigurationError{Network: config.Network, Err: errors.New("a codec is required")}
	}

	m := &Manager{
		network:         network,
		packageID:       network.GetPackageID(),
		registryID:      network.GetRegistryID(),
		reader:          config.Reader,
		codec:           config.Codec,
		cacheFile:       config.CacheFile,
		lookupBatchSize: config.LookupBatchSize,
		objectBatchSize: config.ObjectBatchSize,
		keepFetchGaps:   config.KeepFetchGaps,
		logger:          config.Logger.With().Str("network", network.GetName()).Logger(),
		tracer:          otel.Tracer("github.com/tranvictor/suiprofile/profile"),
	}
	if config.PackageID != "" {
		m.packageID = config.PackageID
	}
	if config.RegistryID != "" {
		m.registryID = config.RegistryID
	}
	if m.reader == nil {
		m.reader = reader.NewSuiReaderGeneric(networks.GetNodes(network), config.Codec)
	}

	m.cache, err = cache.NewBounded(config.CacheSize)
	if err != nil {
		return nil, err
	}
	if m.cacheFile != "" {
		if err := m.cache.Load(m.cacheFile); err != nil {
			return nil, fmt.Errorf("couldn't load profile cache: %w", err)
		}
	}
	return m, nil
}

func (m *Manager) Network() networks.Network { return m.network }
func (m *Manager) PackageID() string          { return m.packageID }
func (m *Manager) RegistryID() string         { return m.registryID }

// GetProfiles returns the profile of every address in lookupAddresses. An
// address without a profile maps to nil. Addresses found in the cache are
// not looked up again unless useCache is false. Addresses are matched
// case-insensitively and regardless of leading zeros, but the result is
// keyed by the strings the caller passed.
func (m *Manager) GetProfiles(
	ctx context.Context,
	lookupAddresses []string,
	useCache bool,
) (result map[string]*common.Profile, err error) {
	ctx, span := m.tracer.Start(ctx, "profile.GetProfiles", trace.WithAttributes(
		attribute.Int("profile.addresses", len(lookupAddresses)),
		attribute.Bool("profile.use_cache", useCache),
	))
	defer func() { endSpan(span, err) }()

	result = map[string]*common.Profile{}
	// normalized address -> the spellings of it the caller used. Results
	// and cache entries are keyed by those spellings.
	pending := map[string][]string{}
	newLookupAddresses := []string{} // not cached, one spelling per address
	seen := map[string]bool{}
	for _, addr := range lookupAddresses {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		if useCache {
			if cached, found := m.cache.Get(addr); found {
				result[addr] = cached
				continue
			}
		}
		normalized := common.NormalizeAddress(addr)
		if _, found := pending[normalized]; !found {
			newLookupAddresses = append(newLookupAddresses, addr)
		}
		pending[normalized] = append(pending[normalized], addr)
	}
	m.logger.Debug().
		Int("cached", len(result)).
		Int("pending", len(newLookupAddresses)).
		Msg("resolving profiles")

	if len(newLookupAddresses) == 0 {
		return result, nil
	}

	objectIDs, err := m.fetchProfileObjectIDs(ctx, newLookupAddresses)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, lookupAddr := range newLookupAddresses {
		normalized := common.NormalizeAddress(lookupAddr)
		id, found := objectIDs[normalized]
		if !found {
			for _, addr := range pending[normalized] {
				result[addr] = nil
				m.cache.Set(addr, nil)
			}
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return result, nil
	}

	profiles, err := m.fetchProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := map[string]*common.Profile{}
	for _, profile := range profiles {
		byID[common.NormalizeAddress(profile.ID)] = profile
	}

	for _, lookupAddr := range newLookupAddresses {
		normalized := common.NormalizeAddress(lookupAddr)
		id, found := objectIDs[normalized]
		if !found {
			continue
		}
		profile, fetched := byID[common.NormalizeAddress(id)]
		for _, addr := range pending[normalized] {
			switch {
			case fetched:
				result[addr] = profile
				m.cache.Set(addr, profile)
			case !m.keepFetchGaps:
				// reported as missing but not cached, so the next lookup
				// tries again
				m.logger.Debug().Str("address", addr).Str("object", id).Msg("profile object could not be fetched")
				result[addr] = nil
			}
		}
	}
	return result, nil
}

// GetProfile returns the profile of lookupAddress or nil if it has none.
func (m *Manager) GetProfile(ctx context.Context, lookupAddress string, useCache bool) (*common.Profile, error) {
	profiles, err := m.GetProfiles(ctx, []string{lookupAddress}, useCache)
	if err != nil {
		return nil, err
	}
	return profiles[lookupAddress], nil
}

func (m *Manager) HasProfile(ctx context.Context, lookupAddress string, useCache bool) (bool, error) {
	profile, err := m.GetProfile(ctx, lookupAddress, useCache)
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}

// RememberProfile stores profile in the cache under its owner, e.g. right
// after it was created or edited.
func (m *Manager) RememberProfile(profile *common.Profile) {
	if profile == nil || profile.Owner == "" {
		return
	}
	m.cache.Set(profile.Owner, profile)
}

// CachedProfiles returns a copy of the cache. Addresses known to have no
// profile map to nil.
func (m *Manager) CachedProfiles() map[string]*common.Profile {
	return m.cache.Snapshot()
}

// PersistCache writes the cache to the configured CacheFile. It does
// nothing when no CacheFile was configured.
func (m *Manager) PersistCache() error {
	if m.cacheFile == "" {
		return nil
	}
	if err := m.cache.Persist(m.cacheFile); err != nil {
		return fmt.Errorf("couldn't persist profile cache: %w", err)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
