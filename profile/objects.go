package profile

import (
	"context"
	"fmt"

	"github.com/tranvictor/suiprofile/common"
)

// fetchProfiles fetches objectIDs in batches the node accepts, all batches
// in parallel.
func (m *Manager) fetchProfiles(ctx context.Context, objectIDs []string) ([]*common.Profile, error) {
	batches := common.Chunk(objectIDs, m.objectBatchSize)
	batchResults := make([][]*common.Profile, len(batches))

	tasks := make([]func(context.Context) error, len(batches))
	for i, batch := range batches {
		i, batch := i, batch
		tasks[i] = func(ctx context.Context) error {
			profiles, err := m.fetchProfileObjects(ctx, batch)
			if err != nil {
				return err
			}
			batchResults[i] = profiles
			return nil
		}
	}
	if err := common.RunParallel(ctx, tasks...); err != nil {
		return nil, err
	}

	profiles := []*common.Profile{}
	for _, batch := range batchResults {
		profiles = append(profiles, batch...)
	}
	return profiles, nil
}

// fetchProfileObjects fetches objectIDs in a single call and decodes them.
// Objects the node reports an error for, or returns without content, are
// skipped.
func (m *Manager) fetchProfileObjects(ctx context.Context, objectIDs []string) ([]*common.Profile, error) {
	resps, err := m.reader.FetchObjects(ctx, objectIDs)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch profile objects: %w", err)
	}
	profiles := []*common.Profile{}
	for _, resp := range resps {
		profile, reason := profileFromObject(resp)
		if profile == nil {
			m.logger.Debug().Str("reason", reason).Msg("skipping profile object")
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// profileFromObject returns nil and the reason when obj is not a usable
// profile.
func profileFromObject(obj common.RawObject) (*common.Profile, string) {
	if obj.Error != nil {
		return nil, fmt.Sprintf("object %s: %s", obj.Error.ObjectID, obj.Error.Code)
	}
	if obj.Data == nil || obj.Data.Content == nil {
		return nil, "object has no content"
	}
	if obj.Data.Owner.AddressOwner == "" {
		return nil, fmt.Sprintf("object %s is not owned by an address", obj.Data.ObjectID)
	}
	fields := obj.Data.Content.Fields

	id := ""
	if uid, ok := fields["id"].(map[string]any); ok {
		id = stringField(uid, "id")
	}
	if id == "" {
		id = obj.Data.ObjectID
	}
	return &common.Profile{
		ID:          id,
		Name:        stringField(fields, "name"),
		ImageURL:    stringField(fields, "image_url"),
		Description: stringField(fields, "description"),
		Owner:       obj.Data.Owner.AddressOwner,
		PreviousTx:  obj.Data.PreviousTransaction,
	}, ""
}

func stringField(fields map[string]any, name string) string {
	value, _ := fields[name].(string)
	return value
}
