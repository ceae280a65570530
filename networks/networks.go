package networks

import (
	"sync"
)

var (
	cachedNetwork Network
	mu            sync.Mutex

	NetworkString string = "testnet"
)

// CurrentNetwork returns the network selected with SetNetwork, falling
// back to NetworkString. It returns nil if NetworkString is not a
// supported network.
func CurrentNetwork() Network {
	mu.Lock()
	current := cachedNetwork
	mu.Unlock()
	if current != nil {
		return current
	}
	if err := SetNetwork(NetworkString); err != nil {
		return nil
	}
	return CurrentNetwork()
}

func SetNetwork(networkStr string) error {
	network, err := GetNetwork(networkStr)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	cachedNetwork = network
	return nil
}
