package profile

import (
	"context"
	"fmt"

	"github.com/tranvictor/suiprofile/common"
)

// fetchProfileObjectIDs finds the profile object id of each address. The
// returned map is keyed by common.NormalizeAddress of the address and
// addresses without a profile are not in it. Batches are inspected
// concurrently and the first failing batch fails the whole lookup.
func (m *Manager) fetchProfileObjectIDs(ctx context.Context, lookupAddresses []string) (map[string]string, error) {
	batches := common.Chunk(lookupAddresses, m.lookupBatchSize)
	batchResults := make([][]common.LookupResult, len(batches))

	tasks := make([]func(context.Context) error, len(batches))
	for i, batch := range batches {
		i, batch := i, batch
		tasks[i] = func(ctx context.Context) error {
			lookupResults, err := m.lookupBatch(ctx, batch)
			if err != nil {
				return err
			}
			batchResults[i] = lookupResults
			return nil
		}
	}
	m.logger.Debug().Int("addresses", len(lookupAddresses)).Int("batches", len(batches)).Msg("looking up profile ids")
	if err := common.RunParallel(ctx, tasks...); err != nil {
		return nil, err
	}

	results := map[string]string{}
	for _, lookupResults := range batchResults {
		for _, r := range lookupResults {
			results[common.NormalizeAddress(r.LookupAddr)] = common.WithHexPrefix(r.ProfileAddr)
		}
	}
	return results, nil
}

func (m *Manager) lookupBatch(ctx context.Context, lookupAddresses []string) ([]common.LookupResult, error) {
	addresses, err := m.codec.Encode(lookupAddresses)
	if err != nil {
		return nil, fmt.Errorf("couldn't encode lookup addresses: %w", err)
	}
	call := common.MoveCall{
		Target:        common.MoveTarget(m.packageID, moduleName, "get_profiles"),
		TypeArguments: []string{},
		Arguments: []common.CallArg{
			common.ObjectArg(m.registryID),
			common.PureArg(addresses),
		},
	}

	resp, err := m.reader.Inspect(ctx, InspectSender, call)
	if err != nil {
		return nil, fmt.Errorf("couldn't inspect %s: %w", call.Target, err)
	}
	if status := resp.Status(); !status.IsSuccess() {
		msg := status.Error
		if msg == "" {
			msg = resp.Error
		}
		return nil, &common.RemoteCallError{Operation: "get_profiles", Message: msg}
	}
	// grab the 1st and only tuple
	if len(resp.Results) == 0 || len(resp.Results[0].ReturnValues) == 0 {
		return nil, &common.InvariantViolation{
			Operation: "get_profiles",
			Detail:    "inspection succeeded without a return value",
		}
	}
	returnValue := resp.Results[0].ReturnValues[0]

	lookupResults := []common.LookupResult{}
	if err := m.codec.Decode(returnValue.Type, returnValue.Bytes, &lookupResults); err != nil {
		return nil, fmt.Errorf("couldn't decode %s: %w", returnValue.Type, err)
	}
	return lookupResults, nil
}
