package common

import "context"

// QueryClient reads from a Sui full node without committing anything.
type QueryClient interface {
	// Inspect runs call in dev-inspect mode on behalf of sender.
	Inspect(ctx context.Context, sender string, call MoveCall) (*InspectionResult, error)
	// FetchObjects returns one RawObject per id, in the same order.
	FetchObjects(ctx context.Context, ids []string) ([]RawObject, error)
}

// Submitter signs and executes a call on behalf of Address().
type Submitter interface {
	Address() string
	SignAndExecute(ctx context.Context, call MoveCall, opts ExecuteOptions) (*ExecutionResult, error)
}

// Signer turns a call into signed transaction bytes. Wallets, keystores
// and hardware devices live behind this interface.
type Signer interface {
	Address() string
	Sign(ctx context.Context, call MoveCall) (txBytes []byte, signatures []string, err error)
}

// Codec is the BCS codec. Encode is also used to turn a MoveCall into
// transaction kind bytes.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(typeTag string, data []byte, out any) error
}
