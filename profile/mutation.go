package profile

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tranvictor/suiprofile/common"
)

// ProfileFields are the user editable fields of a profile. ImageURL and
// Description may be empty.
type ProfileFields struct {
	Name        string
	ImageURL    string
	Description string
}

func (m *Manager) pureStrings(values ...string) ([]common.CallArg, error) {
	args := []common.CallArg{}
	for _, v := range values {
		data, err := m.codec.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("couldn't encode argument %q: %w", v, err)
		}
		args = append(args, common.PureArg(data))
	}
	return args, nil
}

func (m *Manager) execute(
	ctx context.Context,
	submitter common.Submitter,
	function string,
	args []common.CallArg,
	opts common.ExecuteOptions,
) (*common.ExecutionResult, error) {
	call := common.MoveCall{
		Target:        common.MoveTarget(m.packageID, moduleName, function),
		TypeArguments: []string{},
		Arguments:     args,
	}
	resp, err := submitter.SignAndExecute(ctx, call, opts)
	if err != nil {
		return nil, fmt.Errorf("couldn't execute %s: %w", call.Target, err)
	}
	if resp.Effects == nil {
		return nil, &common.InvariantViolation{Operation: function, Detail: "response has no effects"}
	}
	if status := resp.Status(); !status.IsSuccess() {
		return nil, &common.RemoteCallError{Operation: function, Message: status.Error}
	}
	m.logger.Debug().Str("function", function).Str("digest", resp.Digest).Msg("transaction executed")
	return resp, nil
}

// CreateRegistry creates a new profile registry named registryName and
// returns a reference to it.
func (m *Manager) CreateRegistry(
	ctx context.Context,
	submitter common.Submitter,
	registryName string,
) (ref *common.OwnedObjectRef, err error) {
	ctx, span := m.tracer.Start(ctx, "profile.CreateRegistry")
	defer func() { endSpan(span, err) }()

	args, err := m.pureStrings(registryName)
	if err != nil {
		return nil, err
	}
	resp, err := m.execute(ctx, submitter, "create_registry", args, common.ExecuteOptions{ShowEffects: true})
	if err != nil {
		return nil, err
	}
	if len(resp.Effects.Created) != 1 {
		return nil, &common.InvariantViolation{
			Operation: "create_registry",
			Detail:    fmt.Sprintf("expected exactly 1 created object in tx %s, got %d", resp.Digest, len(resp.Effects.Created)),
		}
	}
	created := resp.Effects.Created[0]
	return &created, nil
}

// CreateProfile creates a profile for the submitter in the manager's
// registry. The returned profile is built from fields and the creation
// event; it is not added to the cache.
func (m *Manager) CreateProfile(
	ctx context.Context,
	submitter common.Submitter,
	fields ProfileFields,
) (profile *common.Profile, err error) {
	ctx, span := m.tracer.Start(ctx, "profile.CreateProfile", trace.WithAttributes(
		attribute.String("profile.registry", m.registryID),
	))
	defer func() { endSpan(span, err) }()

	pure, err := m.pureStrings(fields.Name, fields.ImageURL, fields.Description)
	if err != nil {
		return nil, err
	}
	args := append([]common.CallArg{common.ObjectArg(m.registryID)}, pure...)

	// creates 2 objects: the profile (owned by the sender) and a dynamic
	// field inside the registry's table
	resp, err := m.execute(ctx, submitter, "create_profile", args, common.ExecuteOptions{
		ShowEffects: true,
		ShowEvents:  true,
	})
	if err != nil {
		return nil, err
	}

	for _, event := range resp.Events {
		if !strings.HasSuffix(event.Type, createProfileEventSuffix) {
			continue
		}
		profileID, _ := event.ParsedJSON["profile_id"].(string)
		if profileID == "" {
			return nil, &common.InvariantViolation{
				Operation: "create_profile",
				Detail:    fmt.Sprintf("%s event in tx %s has no profile_id", event.Type, resp.Digest),
			}
		}
		owner := event.Sender
		if owner == "" {
			owner = submitter.Address()
		}
		return &common.Profile{
			ID:          profileID,
			Name:        fields.Name,
			ImageURL:    fields.ImageURL,
			Description: fields.Description,
			Owner:       owner,
			PreviousTx:  resp.Digest,
		}, nil
	}
	return nil, &common.InvariantViolation{
		Operation: "create_profile",
		Detail:    fmt.Sprintf("tx %s succeeded without a profile creation event", resp.Digest),
	}
}

// EditProfile replaces the fields of profileID. The cache is left as is;
// callers that want it refreshed use RememberProfile.
func (m *Manager) EditProfile(
	ctx context.Context,
	submitter common.Submitter,
	profileID string,
	fields ProfileFields,
) (resp *common.ExecutionResult, err error) {
	ctx, span := m.tracer.Start(ctx, "profile.EditProfile", trace.WithAttributes(
		attribute.String("profile.id", profileID),
	))
	defer func() { endSpan(span, err) }()

	pure, err := m.pureStrings(fields.Name, fields.ImageURL, fields.Description)
	if err != nil {
		return nil, err
	}
	args := append([]common.CallArg{common.ObjectArg(profileID)}, pure...)
	return m.execute(ctx, submitter, "edit_profile", args, common.ExecuteOptions{ShowEffects: true})
}
