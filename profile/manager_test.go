package profile_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/profile"
)

func newTestManager(t *testing.T, client *fakeQueryClient, opts ...func(*profile.Config)) *profile.Manager {
	t.Helper()
	config := profile.Config{
		Network: "testnet",
		Reader:  client,
		Codec:   jsonCodec{},
	}
	for _, opt := range opts {
		opt(&config)
	}
	m, err := profile.NewManager(config)
	require.NoError(t, err)
	return m
}

func addresses(n int) []string {
	result := make([]string, n)
	for i := range result {
		result[i] = fmt.Sprintf("0x%064x", i+1)
	}
	return result
}

func TestGetProfilesResolvesAndCachesAbsence(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	m := newTestManager(t, client)

	profiles, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xBBB"}, true)
	require.NoError(t, err)

	require.Len(t, profiles, 2)
	require.NotNil(t, profiles["0xAAA"])
	assert.Equal(t, "Alice", profiles["0xAAA"].Name)
	assert.Equal(t, "0xAAA", profiles["0xAAA"].Owner)
	assert.Equal(t, "0x111", profiles["0xAAA"].ID)
	assert.Equal(t, "tx-Alice", profiles["0xAAA"].PreviousTx)
	assert.Contains(t, profiles, "0xBBB")
	assert.Nil(t, profiles["0xBBB"])

	cached := m.CachedProfiles()
	require.Len(t, cached, 2)
	assert.Equal(t, profiles["0xAAA"], cached["0xAAA"])
	assert.Contains(t, cached, "0xBBB")
	assert.Nil(t, cached["0xBBB"])
}

func TestGetProfilesSecondCallHitsCache(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	m := newTestManager(t, client)
	addrs := []string{"0xAAA", "0xBBB"}

	first, err := m.GetProfiles(context.Background(), addrs, true)
	require.NoError(t, err)
	inspects, fetches := client.inspectCount(), client.fetchCount()

	second, err := m.GetProfiles(context.Background(), addrs, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, inspects, client.inspectCount())
	assert.Equal(t, fetches, client.fetchCount())
}

func TestGetProfilesWithoutCacheAlwaysCallsRemote(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	m := newTestManager(t, client)

	for i := 1; i <= 3; i++ {
		_, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xBBB"}, false)
		require.NoError(t, err)
		assert.Equal(t, i, client.inspectCount())
		assert.Equal(t, i, client.fetchCount())
	}
	assert.Equal(t, []int{2, 2, 2}, client.inspectCalls)
}

func TestGetProfilesAbsenceIsServedFromCache(t *testing.T) {
	client := newFakeQueryClient()
	m := newTestManager(t, client)

	p, err := m.GetProfile(context.Background(), "0xBBB", true)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 1, client.inspectCount())
	// nothing to fetch
	assert.Equal(t, 0, client.fetchCount())

	has, err := m.HasProfile(context.Background(), "0xBBB", true)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Equal(t, 1, client.inspectCount())
}

func TestGetProfilesDeduplicatesInput(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	m := newTestManager(t, client)

	profiles, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xAAA", "0xBBB", "0xAAA"}, true)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, []int{2}, client.inspectCalls)
	assert.Equal(t, []int{1}, client.fetchCalls)
}

func TestGetProfilesOnlyLooksUpUncached(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	client.addProfile("0xCCC", "0x333", "Carol")
	m := newTestManager(t, client)

	_, err := m.GetProfiles(context.Background(), []string{"0xAAA"}, true)
	require.NoError(t, err)
	profiles, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xBBB", "0xCCC"}, true)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, client.inspectCalls)
	assert.Equal(t, "Alice", profiles["0xAAA"].Name)
	assert.Nil(t, profiles["0xBBB"])
	assert.Equal(t, "Carol", profiles["0xCCC"].Name)
}

func TestGetProfilesChunksLookups(t *testing.T) {
	client := newFakeQueryClient()
	addrs := addresses(65)
	m := newTestManager(t, client)

	profiles, err := m.GetProfiles(context.Background(), addrs, true)
	require.NoError(t, err)
	assert.Len(t, profiles, 65)
	assert.ElementsMatch(t, []int{30, 30, 5}, client.inspectCalls)
	assert.Equal(t, 0, client.fetchCount())
}

// barrierClient holds every lookup until expected lookups are in flight.
type barrierClient struct {
	*fakeQueryClient
	expected int32
	arrived  atomic.Int32
	allIn    chan struct{}
}

func (c *barrierClient) Inspect(ctx context.Context, sender string, call common.MoveCall) (*common.InspectionResult, error) {
	if c.arrived.Add(1) == c.expected {
		close(c.allIn)
	}
	select {
	case <-c.allIn:
	case <-time.After(5 * time.Second):
		return nil, errors.New("lookup batches did not run concurrently")
	}
	return c.fakeQueryClient.Inspect(ctx, sender, call)
}

func TestGetProfilesRunsLookupBatchesConcurrently(t *testing.T) {
	client := &barrierClient{
		fakeQueryClient: newFakeQueryClient(),
		expected:        3,
		allIn:           make(chan struct{}),
	}
	addrs := addresses(65)
	client.addProfile(addrs[64], "0x111", "Alice")
	m, err := profile.NewManager(profile.Config{Network: "testnet", Reader: client, Codec: jsonCodec{}})
	require.NoError(t, err)

	profiles, err := m.GetProfiles(context.Background(), addrs, true)
	require.NoError(t, err)
	assert.Len(t, profiles, 65)
	assert.Equal(t, "Alice", profiles[addrs[64]].Name)
	assert.ElementsMatch(t, []int{30, 30, 5}, client.inspectCalls)
}

func TestGetProfilesMatchesAddressSpellings(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xaaa", "0x111", "Alice")
	m := newTestManager(t, client)

	addrs := []string{"0xAAA", "0x0aaa", "0xaaa", "0x" + strings.Repeat("0", 61) + "AAA"}
	profiles, err := m.GetProfiles(context.Background(), append(addrs, "0xBBB"), true)
	require.NoError(t, err)
	require.Len(t, profiles, 5)
	for _, addr := range addrs {
		require.NotNil(t, profiles[addr], addr)
		assert.Equal(t, "Alice", profiles[addr].Name)
	}
	assert.Nil(t, profiles["0xBBB"])
	// every spelling of an address is looked up once
	assert.Equal(t, []int{2}, client.inspectCalls)
	assert.Equal(t, []int{1}, client.fetchCalls)

	cached := m.CachedProfiles()
	for _, addr := range addrs {
		require.NotNil(t, cached[addr], addr)
		assert.Equal(t, "Alice", cached[addr].Name)
	}
}

func TestGetProfilesChunksObjectFetches(t *testing.T) {
	client := newFakeQueryClient()
	addrs := addresses(120)
	for i, addr := range addrs {
		client.addProfile(addr, fmt.Sprintf("0x%064x", 1000+i), fmt.Sprintf("user%d", i))
	}
	m := newTestManager(t, client)

	profiles, err := m.GetProfiles(context.Background(), addrs, true)
	require.NoError(t, err)
	require.Len(t, profiles, 120)
	for i, addr := range addrs {
		require.NotNil(t, profiles[addr])
		assert.Equal(t, fmt.Sprintf("user%d", i), profiles[addr].Name)
	}
	assert.ElementsMatch(t, []int{30, 30, 30, 30}, client.inspectCalls)
	assert.ElementsMatch(t, []int{50, 50, 20}, client.fetchCalls)
}

func TestGetProfilesUsesConfiguredTargets(t *testing.T) {
	client := newFakeQueryClient()
	m := newTestManager(t, client, func(c *profile.Config) {
		c.PackageID = "0xPKG"
		c.RegistryID = "0xREG"
	})
	assert.Equal(t, "0xPKG", m.PackageID())
	assert.Equal(t, "0xREG", m.RegistryID())

	_, err := m.GetProfiles(context.Background(), []string{"0xAAA"}, true)
	require.NoError(t, err)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "0xPKG::profile::get_profiles", client.calls[0].Target)
	assert.Equal(t, "0xREG", client.calls[0].Arguments[0].Object)
}

func TestNewManagerUsesNetworkDefaults(t *testing.T) {
	m := newTestManager(t, newFakeQueryClient(), func(c *profile.Config) {
		c.Network = "local"
	})
	network, err := networks.GetNetwork("localnet")
	require.NoError(t, err)
	assert.Equal(t, "localnet", m.Network().GetName())
	assert.Equal(t, network.GetPackageID(), m.PackageID())
	assert.Equal(t, network.GetRegistryID(), m.RegistryID())
}

func TestNewManagerRejectsUnknownNetwork(t *testing.T) {
	_, err := profile.NewManager(profile.Config{Network: "mainnet-ish", Codec: jsonCodec{}})
	require.Error(t, err)

	var configErr *common.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "mainnet-ish", configErr.Network)
	assert.ErrorIs(t, err, networks.ErrNetworkNotFound)
}

func TestNewManagerRequiresCodec(t *testing.T) {
	_, err := profile.NewManager(profile.Config{Network: "testnet"})
	var configErr *common.ConfigurationError
	assert.True(t, errors.As(err, &configErr))
}

func TestGetProfilesReportsFailedInspection(t *testing.T) {
	client := newFakeQueryClient()
	client.failAddr = "0xBAD"
	m := newTestManager(t, client)

	profiles, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xBAD"}, true)
	require.Error(t, err)
	assert.Nil(t, profiles)

	var remoteErr *common.RemoteCallError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "MoveAbort(registry, 1)", remoteErr.Message)
	assert.Equal(t, "get_profiles failed: MoveAbort(registry, 1)", err.Error())
	// nothing is cached for a failed lookup
	assert.Empty(t, m.CachedProfiles())
}

func TestGetProfilesFailsFast(t *testing.T) {
	client := newFakeQueryClient()
	client.failAddr = "0xBAD"
	client.blockAddr = "0xSLOW"
	m := newTestManager(t, client, func(c *profile.Config) {
		c.LookupBatchSize = 1
	})

	_, err := m.GetProfiles(context.Background(), []string{"0xSLOW", "0xBAD"}, true)
	var remoteErr *common.RemoteCallError
	require.True(t, errors.As(err, &remoteErr))

	select {
	case <-client.cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("pending batch was not cancelled")
	}
}

func TestGetProfilesMissingReturnValue(t *testing.T) {
	client := newFakeQueryClient()
	client.emptyResults = true
	m := newTestManager(t, client)

	_, err := m.GetProfiles(context.Background(), []string{"0xAAA"}, true)
	var violation *common.InvariantViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "get_profiles", violation.Operation)
}

func TestGetProfilesDecodeFailure(t *testing.T) {
	client := newFakeQueryClient()
	m, err := profile.NewManager(profile.Config{
		Network: "testnet",
		Reader:  client,
		Codec:   brokenCodec{},
	})
	require.NoError(t, err)

	_, err = m.GetProfiles(context.Background(), []string{"0xAAA"}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestGetProfilesReportsUnfetchableObjectsAsAbsent(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	client.addProfile("0xBBB", "0x222", "Bob")
	client.addProfile("0xCCC", "0x333", "Carol")
	client.fetchErrors["0x222"] = true
	client.noContent["0x333"] = true
	m := newTestManager(t, client)

	profiles, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xBBB", "0xCCC"}, true)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "Alice", profiles["0xAAA"].Name)
	assert.Contains(t, profiles, "0xBBB")
	assert.Nil(t, profiles["0xBBB"])
	assert.Contains(t, profiles, "0xCCC")
	assert.Nil(t, profiles["0xCCC"])

	// not cached, so they are retried
	cached := m.CachedProfiles()
	assert.Len(t, cached, 1)
	delete(client.fetchErrors, "0x222")
	profiles, err = m.GetProfiles(context.Background(), []string{"0xAAA", "0xBBB"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Bob", profiles["0xBBB"].Name)
	assert.Equal(t, []int{3, 1}, client.inspectCalls)
}

func TestGetProfilesKeepsFetchGaps(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	client.addProfile("0xBBB", "0x222", "Bob")
	client.fetchErrors["0x222"] = true
	m := newTestManager(t, client, func(c *profile.Config) {
		c.KeepFetchGaps = true
	})

	profiles, err := m.GetProfiles(context.Background(), []string{"0xAAA", "0xBBB", "0xCCC"}, true)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.NotContains(t, profiles, "0xBBB")
	assert.Nil(t, profiles["0xCCC"])
	assert.Contains(t, profiles, "0xCCC")
}

func TestGetProfilesSkipsObjectsWithoutAddressOwner(t *testing.T) {
	client := &sharedOwnerClient{fakeQueryClient: newFakeQueryClient()}
	client.addProfile("0xAAA", "0x111", "Alice")
	m, err := profile.NewManager(profile.Config{Network: "testnet", Reader: client, Codec: jsonCodec{}})
	require.NoError(t, err)

	p, err := m.GetProfile(context.Background(), "0xAAA", true)
	require.NoError(t, err)
	assert.Nil(t, p)
}

type sharedOwnerClient struct {
	*fakeQueryClient
}

func (c *sharedOwnerClient) FetchObjects(ctx context.Context, ids []string) ([]common.RawObject, error) {
	objects, err := c.fakeQueryClient.FetchObjects(ctx, ids)
	for _, obj := range objects {
		if obj.Data != nil {
			obj.Data.Owner = common.ObjectOwner{Shared: true}
		}
	}
	return objects, err
}

func TestGetProfilesConcurrently(t *testing.T) {
	client := newFakeQueryClient()
	client.addProfile("0xAAA", "0x111", "Alice")
	m := newTestManager(t, client)

	var wg sync.WaitGroup
	results := make([]*common.Profile, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := m.GetProfile(context.Background(), "0xAAA", true)
			assert.NoError(t, err)
			results[i] = p
		}()
	}
	wg.Wait()

	for _, p := range results {
		require.NotNil(t, p)
		assert.Equal(t, *results[0], *p)
	}
	cached := m.CachedProfiles()
	assert.Equal(t, *results[0], *cached["0xAAA"])
}

func TestRememberProfileAndPersistCache(t *testing.T) {
	client := newFakeQueryClient()
	cacheFile := filepath.Join(t.TempDir(), "cache.json")
	m := newTestManager(t, client, func(c *profile.Config) {
		c.CacheFile = cacheFile
	})

	m.RememberProfile(&common.Profile{ID: "0xCCC", Name: "Bob", Owner: "0xBOB"})
	m.RememberProfile(nil)
	_, err := m.GetProfiles(context.Background(), []string{"0xNOBODY"}, true)
	require.NoError(t, err)
	require.NoError(t, m.PersistCache())

	reloaded := newTestManager(t, client, func(c *profile.Config) {
		c.CacheFile = cacheFile
	})
	inspects := client.inspectCount()
	profiles, err := reloaded.GetProfiles(context.Background(), []string{"0xBOB", "0xNOBODY"}, true)
	require.NoError(t, err)
	assert.Equal(t, inspects, client.inspectCount())
	assert.Equal(t, "Bob", profiles["0xBOB"].Name)
	assert.Nil(t, profiles["0xNOBODY"])
}

func TestPersistCacheWithoutFile(t *testing.T) {
	m := newTestManager(t, newFakeQueryClient())
	assert.NoError(t, m.PersistCache())
}

func TestBoundedCache(t *testing.T) {
	client := newFakeQueryClient()
	m := newTestManager(t, client, func(c *profile.Config) {
		c.CacheSize = 2
	})
	_, err := m.GetProfiles(context.Background(), addresses(5), true)
	require.NoError(t, err)
	assert.Len(t, m.CachedProfiles(), 2)
}
