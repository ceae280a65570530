package broadcaster

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"

	"github.com/tranvictor/suiprofile/common"
)

const (
	TIMEOUT     time.Duration = 30 * time.Second
	requestType string        = "WaitForLocalExecution"
)

// Broadcaster implements common.Submitter. It asks its Signer to sign the
// call and sends the signed tx to all nodes it manages as fast as
// possible. The first node that executes it returns the result.
type Broadcaster struct {
	clients map[string]*rpc.Client
	signer  common.Signer
}

// NewGenericBroadcaster dials every node. Nodes that can't be dialed are
// reported to logger and left out.
func NewGenericBroadcaster(nodes map[string]string, signer common.Signer, logger zerolog.Logger) *Broadcaster {
	clients := map[string]*rpc.Client{}
	for name, c := range nodes {
		client, err := rpc.Dial(c)
		if err != nil {
			logger.Warn().Err(err).Str("node", name).Str("url", c).Msg("couldn't connect to node")
		} else {
			clients[name] = client
		}
	}
	return NewBroadcasterWithClients(clients, signer)
}

func NewBroadcasterWithClients(clients map[string]*rpc.Client, signer common.Signer) *Broadcaster {
	return &Broadcaster{
		clients: clients,
		signer:  signer,
	}
}

func (b *Broadcaster) GetNodes() map[string]*rpc.Client {
	return b.clients
}

func (b *Broadcaster) Address() string {
	return b.signer.Address()
}

func (b *Broadcaster) SignAndExecute(ctx context.Context, call common.MoveCall, opts common.ExecuteOptions) (*common.ExecutionResult, error) {
	txBytes, signatures, err := b.signer.Sign(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("couldn't sign the call to %s: %w", call.Target, err)
	}
	return b.Broadcast(ctx, base64.StdEncoding.EncodeToString(txBytes), signatures, opts)
}

type executeResponse struct {
	Result *common.ExecutionResult
	Error  error
}

func (b *Broadcaster) execute(
	ctx context.Context,
	client *rpc.Client,
	txBytes string,
	signatures []string,
	opts common.ExecuteOptions,
) (*common.ExecutionResult, error) {
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	result := &common.ExecutionResult{}
	err := client.CallContext(timeout, result, "sui_executeTransactionBlock", txBytes, signatures, opts, requestType)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Broadcast sends a signed tx to every node. txBytes must be base64
// encoded.
func (b *Broadcaster) Broadcast(
	ctx context.Context,
	txBytes string,
	signatures []string,
	opts common.ExecuteOptions,
) (*common.ExecutionResult, error) {
	if len(b.clients) == 0 {
		return nil, fmt.Errorf("no nodes to broadcast to")
	}
	resCh := make(chan executeResponse, len(b.clients))
	for name := range b.clients {
		name := name
		cli := b.clients[name]
		go func() {
			result, err := b.execute(ctx, cli, txBytes, signatures, opts)
			if err != nil {
				err = fmt.Errorf("%s: %w", name, err)
			}
			resCh <- executeResponse{Result: result, Error: err}
		}()
	}
	errs := []error{}
	for i := 0; i < len(b.clients); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Result, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't broadcast to any nodes: %w", errors.Join(errs...))
}
