package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tranvictor/suiprofile/common"
)

// ProfileCache maps an address to its profile. A nil profile is a negative
// entry: the address was looked up and has no profile. Addresses that were
// never looked up are not in the cache at all.
//
// The cache is unbounded unless it is built with NewBounded, in which case
// the least recently used entries are evicted first.
type ProfileCache struct {
	mu      sync.Mutex
	data    map[string]*common.Profile
	bounded *lru.Cache[string, *common.Profile]
}

func New() *ProfileCache {
	return &ProfileCache{
		data: map[string]*common.Profile{},
	}
}

func NewBounded(size int) (*ProfileCache, error) {
	if size <= 0 {
		return New(), nil
	}
	c, err := lru.New[string, *common.Profile](size)
	if err != nil {
		return nil, fmt.Errorf("couldn't create lru cache of size %d: %w", size, err)
	}
	return &ProfileCache{bounded: c}, nil
}

func (c *ProfileCache) Get(addr string) (*common.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Get(addr)
	}
	p, found := c.data[addr]
	return p, found
}

func (c *ProfileCache) Has(addr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Contains(addr)
	}
	_, found := c.data[addr]
	return found
}

func (c *ProfileCache) Set(addr string, profile *common.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		c.bounded.Add(addr, profile)
		return
	}
	c.data[addr] = profile
}

func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.data)
}

// Snapshot returns a copy of every entry, negative entries included.
func (c *ProfileCache) Snapshot() map[string]*common.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := map[string]*common.Profile{}
	if c.bounded != nil {
		for _, addr := range c.bounded.Keys() {
			if p, found := c.bounded.Peek(addr); found {
				res[addr] = p
			}
		}
		return res
	}
	for addr, p := range c.data {
		res[addr] = p
	}
	return res
}

type persistedCache struct {
	Data map[string]*common.Profile `json:"Data"`
}

// Persist writes every entry to path as json. Negative entries are stored
// as null.
func (c *ProfileCache) Persist(path string) error {
	jsonData, err := json.MarshalIndent(persistedCache{Data: c.Snapshot()}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, jsonData, 0644)
}

// Load fills the cache with the entries persisted at path. A missing file
// leaves the cache untouched.
func (c *ProfileCache) Load(path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	persisted := persistedCache{}
	if err := json.Unmarshal(content, &persisted); err != nil {
		return fmt.Errorf("cache file %s is corrupted: %w", path, err)
	}
	for addr, p := range persisted.Data {
		c.Set(addr, p)
	}
	return nil
}
