package util

import "github.com/tranvictor/suiprofile/ui"

// ProfileDisplay is the human-readable view-model for the profile of one
// looked up address. StyledText fields serialize to JSON as plain strings.
type ProfileDisplay struct {
	Address     string        `json:"address"`
	Status      ui.StyledText `json:"status"`
	ID          string        `json:"id,omitempty"`
	Name        ui.StyledText `json:"name,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Description string        `json:"description,omitempty"`
	PreviousTx  string        `json:"previousTx,omitempty"`
}

// NetworkDisplay is the human-readable view-model for a supported network.
type NetworkDisplay struct {
	Name             string            `json:"name"`
	AlternativeNames []string          `json:"alternative_names,omitempty"`
	PackageID        string            `json:"package_id"`
	RegistryID       string            `json:"registry_id"`
	Nodes            map[string]string `json:"nodes"`
}
