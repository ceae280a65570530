package reader

import (
	"context"
	"errors"
	"fmt"

	"github.com/tranvictor/suiprofile/common"
)

var ErrNoNodes = errors.New("no nodes configured")

// SuiReader implements common.QueryClient on top of several full nodes.
// Every read is sent to all of them and the first successful answer wins.
type SuiReader struct {
	nodes map[string]SuiNode
	codec common.Codec
}

func NewSuiReaderGeneric(nodes map[string]string, codec common.Codec, opts ...NodeOption) *SuiReader {
	ns := map[string]SuiNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url, opts...)
	}
	return NewSuiReaderWithNodes(ns, codec)
}

func NewSuiReaderWithNodes(nodes map[string]SuiNode, codec common.Codec) *SuiReader {
	return &SuiReader{
		nodes: nodes,
		codec: codec,
	}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type inspectResponse struct {
	Result *common.InspectionResult
	Error  error
}

func (r *SuiReader) Inspect(ctx context.Context, sender string, call common.MoveCall) (*common.InspectionResult, error) {
	if len(r.nodes) == 0 {
		return nil, ErrNoNodes
	}
	txBytes, err := r.codec.Encode(call)
	if err != nil {
		return nil, fmt.Errorf("couldn't encode call to %s: %w", call.Target, err)
	}
	resCh := make(chan inspectResponse, len(r.nodes))
	for i := range r.nodes {
		n := r.nodes[i]
		go func() {
			result, err := n.DevInspectTransactionBlock(ctx, sender, txBytes)
			resCh <- inspectResponse{
				Result: result,
				Error:  wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(r.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Result, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type objectsResponse struct {
	Objects []common.RawObject
	Error   error
}

func (r *SuiReader) FetchObjects(ctx context.Context, ids []string) ([]common.RawObject, error) {
	if len(r.nodes) == 0 {
		return nil, ErrNoNodes
	}
	resCh := make(chan objectsResponse, len(r.nodes))
	for i := range r.nodes {
		n := r.nodes[i]
		go func() {
			objects, err := n.MultiGetObjects(ctx, ids)
			resCh <- objectsResponse{
				Objects: objects,
				Error:   wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(r.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Objects, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}
