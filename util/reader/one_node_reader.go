package reader

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"

	"github.com/tranvictor/suiprofile/common"
)

const TIMEOUT time.Duration = 10 * time.Second

type objectDataOptions struct {
	ShowContent             bool `json:"showContent"`
	ShowOwner               bool `json:"showOwner"`
	ShowPreviousTransaction bool `json:"showPreviousTransaction"`
}

type OneNodeReader struct {
	nodeName string
	nodeURL  string
	client   *rpc.Client
	mu       sync.Mutex

	// nil means unlimited
	limiter *rate.Limiter
}

type NodeOption func(*OneNodeReader)

// WithRateLimit allows at most perSecond requests per second to the node,
// in bursts of up to burst requests. Public full nodes throttle clients
// that go faster.
func WithRateLimit(perSecond float64, burst int) NodeOption {
	return func(onr *OneNodeReader) {
		if perSecond > 0 {
			onr.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

func NewOneNodeReader(name, url string, opts ...NodeOption) *OneNodeReader {
	onr := &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
	for _, opt := range opts {
		opt(onr)
	}
	return onr
}

// NewOneNodeReaderWithClient wraps an already connected client, e.g. an
// in-process one.
func NewOneNodeReaderWithClient(name string, client *rpc.Client, opts ...NodeOption) *OneNodeReader {
	onr := &OneNodeReader{
		nodeName: name,
		client:   client,
	}
	for _, opt := range opts {
		opt(onr)
	}
	return onr
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) wait(ctx context.Context) error {
	if onr.limiter == nil {
		return nil
	}
	return onr.limiter.Wait(ctx)
}

func (onr *OneNodeReader) Client() (*rpc.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		return onr.client, nil
	}
	client, err := rpc.Dial(onr.nodeURL)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	return onr.client, nil
}

func (onr *OneNodeReader) DevInspectTransactionBlock(ctx context.Context, sender string, txBytes []byte) (*common.InspectionResult, error) {
	if err := onr.wait(ctx); err != nil {
		return nil, err
	}
	cli, err := onr.Client()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	result := &common.InspectionResult{}
	err = cli.CallContext(
		timeout,
		result,
		"sui_devInspectTransactionBlock",
		sender,
		base64.StdEncoding.EncodeToString(txBytes),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (onr *OneNodeReader) MultiGetObjects(ctx context.Context, ids []string) ([]common.RawObject, error) {
	if err := onr.wait(ctx); err != nil {
		return nil, err
	}
	cli, err := onr.Client()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	result := []common.RawObject{}
	err = cli.CallContext(
		timeout,
		&result,
		"sui_multiGetObjects",
		ids,
		objectDataOptions{
			ShowContent:             true,
			ShowOwner:               true,
			ShowPreviousTransaction: true,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(result) != len(ids) {
		return nil, fmt.Errorf("%s returned %d objects for %d ids", onr.nodeName, len(result), len(ids))
	}
	return result, nil
}
