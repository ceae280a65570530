package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/config"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/profile"
	"github.com/tranvictor/suiprofile/ui"
	"github.com/tranvictor/suiprofile/util"
)

func newUI() ui.UI {
	return ui.NewTerminalUI()
}

// newErrorUI writes to stderr so errors don't mix with --json output.
func newErrorUI() ui.UI {
	return ui.NewTerminalUIWithWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func currentNetwork() (networks.Network, error) {
	network, err := networks.GetNetwork(config.Network)
	if err != nil {
		return nil, &common.ConfigurationError{Network: config.Network, Err: err}
	}
	return network, nil
}

// newManager connects to the selected network. The registry is fetched
// first because calls taking it can't be encoded without its initial
// shared version.
func newManager(ctx context.Context, logger zerolog.Logger) (*profile.Manager, error) {
	network, err := currentNetwork()
	if err != nil {
		return nil, err
	}
	registryID := config.RegistryID
	if registryID == "" {
		registryID = network.GetRegistryID()
	}

	codec, err := util.RegistryCodec(ctx, util.SuiReader(network, nil, config.RateLimit), registryID)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("registry", registryID).Msg("registry resolved")

	return profile.NewManager(profile.Config{
		Network:    network.GetName(),
		PackageID:  config.PackageID,
		RegistryID: registryID,
		Reader:     util.SuiReader(network, codec, config.RateLimit),
		Codec:      codec,
		Logger:     &logger,
		CacheSize:  config.CacheSize,
		CacheFile:  util.CacheFile(network),
	})
}
