package ingestion

import (
	"context"
	"fmt"

	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/chain"
	"flarekit/internal/infrastructure/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const ingestionProtocol = "ingestion"

// Canonical serialization sorts map keys, so the same document always hashes
// to the same digest.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Poster writes extracted documents to the on-chain document registry.
type Poster struct {
	client          chain.Client
	registry        *contracts.BoundContract
	maxPayloadBytes int
	log             *zap.Logger
}

// NewPoster binds the document registry. A zero registry address means the
// registry is not deployed on this network and posting is unavailable.
func NewPoster(client chain.Client, registry common.Address, maxPayloadBytes int, logger *zap.Logger) (*Poster, error) {
	if registry == (common.Address{}) {
		return nil, &entity.ProtocolError{
			Protocol: ingestionProtocol,
			Op:       "init",
			Err:      &entity.ConfigError{Reason: "document registry contract is not configured on this network"},
		}
	}
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = 16 * 1024
	}
	return &Poster{
		client:          client,
		registry:        contracts.Bind("DocumentRegistry", registry, contracts.MustLoad("DocumentRegistry")),
		maxPayloadBytes: maxPayloadBytes,
		log:             logger.Named("IngestionPoster"),
	}, nil
}

// Hash returns the keccak256 digest of the document's canonical payload.
func (p *Poster) Hash(doc Document) (common.Hash, string, error) {
	payload, err := json.Marshal(doc.Fields)
	if err != nil {
		return common.Hash{}, "", &entity.ProtocolError{
			Protocol: ingestionProtocol,
			Op:       "hash",
			Err:      fmt.Errorf("failed to serialize document fields: %w", err),
		}
	}
	return crypto.Keccak256Hash(payload), string(payload), nil
}

// Post validates the document against its template, hashes the canonical
// payload and registers it on chain. Returns the transaction hash.
func (p *Poster) Post(ctx context.Context, template Template, doc Document) (string, error) {
	if err := template.Validate(doc); err != nil {
		return "", &entity.ProtocolError{Protocol: ingestionProtocol, Op: "post", Err: err}
	}

	docHash, payload, err := p.Hash(doc)
	if err != nil {
		return "", err
	}
	if len(payload) > p.maxPayloadBytes {
		return "", &entity.ProtocolError{
			Protocol: ingestionProtocol,
			Op:       "post",
			Err:      fmt.Errorf("document payload is %d bytes, limit is %d", len(payload), p.maxPayloadBytes),
		}
	}

	inv, err := p.registry.Invoke("registerDocument", docHash, doc.Template, payload)
	if err != nil {
		return "", &entity.ProtocolError{Protocol: ingestionProtocol, Op: "post", Err: err}
	}
	utx, err := p.client.BuildTransaction(ctx, inv, p.client.Address(), nil)
	if err != nil {
		return "", &entity.ProtocolError{Protocol: ingestionProtocol, Op: "post", Err: err}
	}
	txHash, err := p.client.SignAndSendTransaction(ctx, utx)
	if err != nil {
		return "", &entity.ProtocolError{Protocol: ingestionProtocol, Op: "post", Err: err}
	}

	p.log.Info("document registered",
		zap.String("template", doc.Template),
		zap.String("source", doc.Source),
		zap.String("docHash", docHash.Hex()),
		zap.String("txHash", txHash))
	return txHash, nil
}

// IsRegistered reports whether a document hash is already on the registry.
func (p *Poster) IsRegistered(ctx context.Context, docHash common.Hash) (bool, error) {
	inv, err := p.registry.Invoke("isRegistered", docHash)
	if err != nil {
		return false, &entity.ProtocolError{Protocol: ingestionProtocol, Op: "isRegistered", Err: err}
	}
	out, err := p.client.Call(ctx, inv)
	if err != nil {
		return false, &entity.ProtocolError{Protocol: ingestionProtocol, Op: "isRegistered", Err: err}
	}
	if len(out) == 0 {
		return false, &entity.ProtocolError{
			Protocol: ingestionProtocol,
			Op:       "isRegistered",
			Err:      fmt.Errorf("isRegistered returned no outputs"),
		}
	}
	registered, ok := out[0].(bool)
	if !ok {
		return false, &entity.ProtocolError{
			Protocol: ingestionProtocol,
			Op:       "isRegistered",
			Err:      fmt.Errorf("unexpected result type %T from isRegistered", out[0]),
		}
	}
	return registered, nil
}
