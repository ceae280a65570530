package util

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/util/bcs"
	"github.com/tranvictor/suiprofile/util/reader"
)

var addressRegexp = regexp.MustCompile(`\b0x[0-9a-fA-F]{1,64}\b`)

// ScanForAddresses returns every distinct Sui address found in para, in
// the order they appear.
func ScanForAddresses(para string) []string {
	result := []string{}
	seen := map[string]bool{}
	for _, addr := range addressRegexp.FindAllString(para, -1) {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		result = append(result, addr)
	}
	return result
}

func IsAddress(addr string) bool {
	found := addressRegexp.FindString(addr)
	return found != "" && found == addr
}

// CacheFile is where the profile cache of network is kept between runs,
// next to the networks directory.
func CacheFile(network networks.Network) string {
	return filepath.Join(filepath.Dir(networks.NETWORKS_DIR), fmt.Sprintf("cache-%s.json", network.GetName()))
}

// SuiReader reads from every node of network, sending each of them at
// most requestsPerSecond requests per second. 0 means no limit.
func SuiReader(network networks.Network, codec common.Codec, requestsPerSecond float64) *reader.SuiReader {
	return reader.NewSuiReaderGeneric(
		networks.GetNodes(network),
		codec,
		reader.WithRateLimit(requestsPerSecond, int(requestsPerSecond)+1),
	)
}

// RegistryCodec returns a BCS codec that can encode calls taking
// registryID, looking up the registry's initial shared version with r.
func RegistryCodec(ctx context.Context, r common.QueryClient, registryID string) (*bcs.Codec, error) {
	objects, err := r.FetchObjects(ctx, []string{registryID})
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch registry %s: %w", registryID, err)
	}
	if len(objects) != 1 || objects[0].Data == nil {
		return nil, fmt.Errorf("registry %s not found", registryID)
	}
	owner := objects[0].Data.Owner
	if !owner.Shared {
		return nil, fmt.Errorf("registry %s is not a shared object", registryID)
	}
	codec := bcs.NewCodec()
	codec.AddSharedObject(registryID, owner.InitialSharedVersion)
	return codec, nil
}
