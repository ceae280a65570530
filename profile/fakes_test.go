package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/tranvictor/suiprofile/common"
)

type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Decode(typeTag string, data []byte, out any) error {
	return json.Unmarshal(data, out)
}

type brokenCodec struct{ jsonCodec }

func (brokenCodec) Decode(typeTag string, data []byte, out any) error {
	return errors.New("unsupported type " + typeTag)
}

// fakeQueryClient serves get_profiles inspections and object fetches out
// of memory. Like a node decoded by the real codec, it reports lookup
// addresses normalized and without 0x.
type fakeQueryClient struct {
	mu sync.Mutex

	// normalized lookup address -> profile object id
	profileIDs map[string]string
	// profile object id -> profile
	profiles map[string]*common.Profile

	fetchErrors map[string]bool
	noContent   map[string]bool

	// failAddr makes the batch containing it report a failed status
	failAddr string
	// blockAddr makes the batch containing it wait for cancellation
	blockAddr string
	cancelled chan struct{}
	// emptyResults makes successful inspections return no value
	emptyResults bool

	inspectCalls []int
	fetchCalls   []int
	calls        []common.MoveCall
}

func newFakeQueryClient() *fakeQueryClient {
	return &fakeQueryClient{
		profileIDs:  map[string]string{},
		profiles:    map[string]*common.Profile{},
		fetchErrors: map[string]bool{},
		noContent:   map[string]bool{},
		cancelled:   make(chan struct{}, 100),
	}
}

func (f *fakeQueryClient) addProfile(owner, id, name string) {
	f.profileIDs[common.NormalizeAddress(owner)] = id
	f.profiles[id] = &common.Profile{
		ID:          id,
		Name:        name,
		ImageURL:    "https://img/" + name,
		Description: name + "'s profile",
		Owner:       owner,
		PreviousTx:  "tx-" + name,
	}
}

func (f *fakeQueryClient) Inspect(ctx context.Context, sender string, call common.MoveCall) (*common.InspectionResult, error) {
	var addrs []string
	if err := json.Unmarshal(call.Arguments[1].Pure, &addrs); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.inspectCalls = append(f.inspectCalls, len(addrs))
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	result := &common.InspectionResult{}
	lookupResults := []common.LookupResult{}
	for _, addr := range addrs {
		if f.blockAddr != "" && addr == f.blockAddr {
			<-ctx.Done()
			f.cancelled <- struct{}{}
			return nil, ctx.Err()
		}
		if f.failAddr != "" && addr == f.failAddr {
			result.Effects.Status = common.ExecutionStatus{
				Status: common.StatusFailure,
				Error:  "MoveAbort(registry, 1)",
			}
			return result, nil
		}
		if id, found := f.profileIDs[common.NormalizeAddress(addr)]; found {
			lookupResults = append(lookupResults, common.LookupResult{
				LookupAddr:  strings.TrimPrefix(common.NormalizeAddress(addr), "0x"),
				ProfileAddr: strings.TrimPrefix(id, "0x"),
			})
		}
	}

	result.Effects.Status = common.ExecutionStatus{Status: common.StatusSuccess}
	if f.emptyResults {
		return result, nil
	}
	data, err := json.Marshal(lookupResults)
	if err != nil {
		return nil, err
	}
	result.Results = []common.CommandResult{{
		ReturnValues: []common.ReturnValue{{
			Bytes: data,
			Type:  "vector<0x1::profile::LookupResult>",
		}},
	}}
	return result, nil
}

func (f *fakeQueryClient) FetchObjects(ctx context.Context, ids []string) ([]common.RawObject, error) {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, len(ids))
	f.mu.Unlock()

	objects := []common.RawObject{}
	for _, id := range ids {
		if f.fetchErrors[id] {
			objects = append(objects, common.RawObject{
				Error: &common.ObjectError{Code: "notExists", ObjectID: id},
			})
			continue
		}
		if f.noContent[id] {
			objects = append(objects, common.RawObject{Data: &common.ObjectData{ObjectID: id}})
			continue
		}
		p, found := f.profiles[id]
		if !found {
			objects = append(objects, common.RawObject{
				Error: &common.ObjectError{Code: "notExists", ObjectID: id},
			})
			continue
		}
		objects = append(objects, common.RawObject{Data: &common.ObjectData{
			ObjectID:            id,
			Owner:               common.ObjectOwner{AddressOwner: p.Owner},
			PreviousTransaction: p.PreviousTx,
			Content: &common.MoveObject{
				DataType: "moveObject",
				Type:     "0x1::profile::Profile",
				Fields: map[string]any{
					"id":          map[string]any{"id": p.ID},
					"name":        p.Name,
					"image_url":   p.ImageURL,
					"description": p.Description,
				},
			},
		}})
	}
	return objects, nil
}

func (f *fakeQueryClient) inspectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inspectCalls)
}

func (f *fakeQueryClient) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetchCalls)
}

type fakeSubmitter struct {
	address string
	result  *common.ExecutionResult
	err     error

	calls []common.MoveCall
	opts  []common.ExecuteOptions
}

func (s *fakeSubmitter) Address() string { return s.address }

func (s *fakeSubmitter) SignAndExecute(ctx context.Context, call common.MoveCall, opts common.ExecuteOptions) (*common.ExecutionResult, error) {
	s.calls = append(s.calls, call)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func successEffects(created ...common.OwnedObjectRef) *common.TransactionEffects {
	return &common.TransactionEffects{
		Status:  common.ExecutionStatus{Status: common.StatusSuccess},
		Created: created,
	}
}
