package util_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/suiprofile/common"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/ui"
	"github.com/tranvictor/suiprofile/util"
)

func profilesFixture() map[string]*common.Profile {
	return map[string]*common.Profile{
		"0xAAA": {
			ID:          "0x111",
			Name:        "Alice",
			ImageURL:    "https://alice.png",
			Description: "hi",
			Owner:       "0xAAA",
			PreviousTx:  "tx1",
		},
		"0xBBB": nil,
	}
}

func TestDisplayProfilesTable(t *testing.T) {
	rec := ui.NewRecordingUI()
	displays := util.DisplayProfiles(rec, []string{"0xAAA", "0xBBB", "0xCCC", "0xAAA"}, profilesFixture())

	require.Len(t, displays, 3)
	assert.Equal(t, util.StatusFound, displays[0].Status.Text)
	assert.Equal(t, ui.SeveritySuccess, displays[0].Status.Severity)
	assert.Equal(t, util.StatusNoProfile, displays[1].Status.Text)
	assert.Equal(t, util.StatusUnknown, displays[2].Status.Text)

	assert.Equal(t, []string{
		"0xAAA | found | Alice | 0x111",
		"0xBBB | no profile |  | ",
		"0xCCC | unknown |  | ",
	}, rec.Messages("Table"))
}

func TestDisplaySingleProfile(t *testing.T) {
	rec := ui.NewRecordingUI()
	util.DisplayProfiles(rec, []string{"0xAAA"}, profilesFixture())

	assert.Equal(t, []string{
		"Address: 0xAAA",
		"Status: found",
		"Profile: 0x111",
		"Name: Alice",
		"Image: https://alice.png",
		"Description: hi",
		"Previous tx: tx1",
	}, rec.Messages("KeyValue"))

	rec = ui.NewRecordingUI()
	util.DisplayProfiles(rec, []string{"0xBBB"}, profilesFixture())
	assert.Equal(t, []string{"Address: 0xBBB", "Status: no profile"}, rec.Messages("KeyValue"))
}

func TestProfileDisplayJSON(t *testing.T) {
	displays := util.DisplayProfiles(ui.NewRecordingUI(), []string{"0xAAA", "0xBBB"}, profilesFixture())
	data, err := json.Marshal(displays)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"address": "0xAAA", "status": "found", "id": "0x111", "name": "Alice",
		 "imageUrl": "https://alice.png", "description": "hi", "previousTx": "tx1"},
		{"address": "0xBBB", "status": "no profile", "name": ""}
	]`, string(data))
}

func TestDisplayNetworks(t *testing.T) {
	rec := ui.NewRecordingUI()
	displays := util.DisplayNetworks(rec, []networks.Network{networks.Localnet})

	require.Len(t, displays, 1)
	assert.Equal(t, "localnet", displays[0].Name)
	assert.Equal(t, []string{"localnet (local)"}, rec.Messages("Section"))
	assert.True(t, rec.HasMessage("Package: "+networks.Localnet.GetPackageID()))
	assert.True(t, rec.HasMessage("http://127.0.0.1:9000"))
}

func TestDisplayError(t *testing.T) {
	rec := ui.NewRecordingUI()
	util.DisplayError(rec, &common.ConfigurationError{Network: "nope", Err: networks.ErrNetworkNotFound})
	require.Len(t, rec.Messages("Critical"), 1)
	assert.Contains(t, rec.Messages("Critical")[0], "nope")
	assert.Len(t, rec.Messages("Info"), 1)

	rec = ui.NewRecordingUI()
	util.DisplayError(rec, fmt.Errorf("create_profile: %w", &common.InvariantViolation{Operation: "create_profile", Detail: "no event"}))
	assert.Len(t, rec.Messages("Critical"), 1)
	assert.Empty(t, rec.Messages("Error"))

	rec = ui.NewRecordingUI()
	util.DisplayError(rec, errors.New("couldn't read from any nodes"))
	assert.Equal(t, []string{"couldn't read from any nodes"}, rec.Messages("Error"))
	assert.Empty(t, rec.Messages("Critical"))
}
