package util

import (
	"errors"
	"sort"
	"strings"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/ui"
)

const (
	StatusFound     = "found"
	StatusNoProfile = "no profile"
	StatusUnknown   = "unknown"
)

// ── Build phase ─────────────────────────────────────────────────────────────

func buildProfileDisplay(addr string, profile *common.Profile, found bool) ProfileDisplay {
	d := ProfileDisplay{Address: addr}
	switch {
	case !found:
		// the object could not be fetched and the gap was kept
		d.Status = ui.StyledText{Text: StatusUnknown, Severity: ui.SeverityError}
	case profile == nil:
		d.Status = ui.StyledText{Text: StatusNoProfile, Severity: ui.SeverityWarn}
	default:
		d.Status = ui.StyledText{Text: StatusFound, Severity: ui.SeveritySuccess}
		d.ID = profile.ID
		d.Name = ui.StyledText{Text: profile.Name, Severity: ui.SeverityCritical}
		d.ImageURL = profile.ImageURL
		d.Description = profile.Description
		d.PreviousTx = profile.PreviousTx
	}
	return d
}

func buildNetworkDisplay(n networks.Network) NetworkDisplay {
	return NetworkDisplay{
		Name:             n.GetName(),
		AlternativeNames: n.GetAlternativeNames(),
		PackageID:        n.GetPackageID(),
		RegistryID:       n.GetRegistryID(),
		Nodes:            networks.GetNodes(n),
	}
}

// ── Print phase ─────────────────────────────────────────────────────────────

func printProfileDisplays(u ui.UI, displays []ProfileDisplay) {
	rows := [][]string{}
	for _, d := range displays {
		rows = append(rows, []string{d.Address, u.Style(d.Status), u.Style(d.Name), d.ID})
	}
	u.Table([]string{"Address", "Status", "Name", "Profile"}, rows)
}

func printProfileDetail(u ui.UI, d ProfileDisplay) {
	rows := [][2]string{
		{"Address", d.Address},
		{"Status", u.Style(d.Status)},
	}
	if d.ID != "" {
		rows = append(rows,
			[2]string{"Profile", d.ID},
			[2]string{"Name", u.Style(d.Name)},
			[2]string{"Image", d.ImageURL},
			[2]string{"Description", d.Description},
			[2]string{"Previous tx", d.PreviousTx},
		)
	}
	u.KeyValue(rows)
}

func printNetworkDisplay(u ui.UI, d NetworkDisplay) {
	name := d.Name
	if len(d.AlternativeNames) > 0 {
		name += " (" + strings.Join(d.AlternativeNames, ", ") + ")"
	}
	u.Section(name)
	rows := [][2]string{
		{"Package", d.PackageID},
		{"Registry", d.RegistryID},
	}
	nodeNames := make([]string, 0, len(d.Nodes))
	for nodeName := range d.Nodes {
		nodeNames = append(nodeNames, nodeName)
	}
	sort.Strings(nodeNames)
	for _, nodeName := range nodeNames {
		rows = append(rows, [2]string{"Node " + nodeName, d.Nodes[nodeName]})
	}
	u.KeyValue(rows)
}

// ── Public API ──────────────────────────────────────────────────────────────

// ProfileDisplays builds one view-model per distinct address, in the order
// of addresses. Addresses missing from profiles are marked unknown.
func ProfileDisplays(addresses []string, profiles map[string]*common.Profile) []ProfileDisplay {
	displays := []ProfileDisplay{}
	seen := map[string]bool{}
	for _, addr := range addresses {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		profile, found := profiles[addr]
		displays = append(displays, buildProfileDisplay(addr, profile, found))
	}
	return displays
}

// DisplayProfiles writes the ProfileDisplays of addresses to u, as a table
// or, for a single address, as a detail block.
func DisplayProfiles(u ui.UI, addresses []string, profiles map[string]*common.Profile) []ProfileDisplay {
	displays := ProfileDisplays(addresses, profiles)
	if len(displays) == 1 {
		printProfileDetail(u, displays[0])
	} else {
		printProfileDisplays(u, displays)
	}
	return displays
}

func NetworkDisplays(ns []networks.Network) []NetworkDisplay {
	displays := []NetworkDisplay{}
	for _, n := range ns {
		displays = append(displays, buildNetworkDisplay(n))
	}
	return displays
}

// DisplayNetworks writes every network with its package, registry and
// nodes to u.
func DisplayNetworks(u ui.UI, ns []networks.Network) []NetworkDisplay {
	displays := NetworkDisplays(ns)
	for _, d := range displays {
		printNetworkDisplay(u, d)
	}
	return displays
}

// DisplayError reports a failed command. Errors that no retry can fix are
// printed as critical.
func DisplayError(u ui.UI, err error) {
	var configErr *common.ConfigurationError
	var violation *common.InvariantViolation
	switch {
	case errors.As(err, &configErr):
		u.Critical("%s", err)
		u.Info("Run \"suiprofile network list\" to see the supported networks.")
	case errors.As(err, &violation):
		u.Critical("%s", err)
	default:
		u.Error("%s", err)
	}
}
