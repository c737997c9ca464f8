package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/contracts"
	"flarekit/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Backend is the subset of ethclient.Client the chain client talks to.
// Declared here so tests can substitute a scripted implementation.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client is the single point of truth for talking to the chain: connection
// lifecycle, account identity, transaction construction, signing, broadcast
// and read calls.
type Client interface {
	// Call executes a read-only invocation against current chain state and
	// returns the decoded outputs. It never touches the nonce counter or
	// signing material.
	Call(ctx context.Context, inv *contracts.Invocation) ([]any, error)

	// BuildTransaction resolves the sender's next nonce, estimates gas and
	// assembles an unsigned transaction envelope. Concurrent builds for the
	// same account are serialized at nonce reservation, so each in-flight
	// build holds a distinct nonce.
	BuildTransaction(ctx context.Context, inv *contracts.Invocation, sender common.Address, value *big.Int) (*entity.UnsignedTx, error)

	// SignAndSendTransaction signs the envelope with the held key and
	// broadcasts it, returning the transaction hash as soon as the node
	// accepts it into its pending pool. It does not wait for mining.
	SignAndSendTransaction(ctx context.Context, utx *entity.UnsignedTx) (string, error)

	// NativeBalance fetches the native token balance of an address.
	NativeBalance(ctx context.Context, account common.Address) (*big.Int, error)

	// Address returns the configured account address (zero when read-only).
	Address() common.Address

	// ChainID returns the connected chain's identifier.
	ChainID() *big.Int

	// CanWrite reports whether a signing credential is configured.
	CanWrite() bool

	// Close releases the underlying RPC connection.
	Close()
}

// Credentials identifies the sending account. PrivateKey is a hex-encoded
// secp256k1 key (with or without 0x prefix); when empty the client operates
// read-only and every write fails with a configuration error. The key is
// parsed once at construction and never logged.
type Credentials struct {
	Address    string
	PrivateKey string
}

// errors returned for mutability misuse of the typed invocation builder.
var (
	ErrWriteThroughCall = &entity.TxBuildError{Reason: "state-changing function cannot be executed through Call"}
	ErrReadThroughBuild = &entity.TxBuildError{Reason: "read-only function cannot be built into a transaction"}
)

type client struct {
	backend  Backend
	eth      *ethclient.Client // nil when constructed with a test backend
	settings entity.NetworkSettings
	chainID  *big.Int
	address  common.Address
	key      *ecdsa.PrivateKey
	nonces   *nonceLedger
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewClient dials the configured RPC endpoint, verifies the connection by
// fetching the chain ID (retried per policy) and parses the account
// credential, if any.
func NewClient(ctx context.Context, settings entity.NetworkSettings, creds Credentials, logger *zap.Logger) (Client, error) {
	if strings.TrimSpace(settings.RPCURL) == "" {
		return nil, &entity.ConfigError{Reason: "RPC URL is not set"}
	}

	dialCtx := ctx
	if settings.RPCTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, settings.RPCTimeout)
		defer cancel()
	}
	eth, err := ethclient.DialContext(dialCtx, settings.RPCURL)
	if err != nil {
		return nil, &entity.RPCError{Op: "dial", Err: err}
	}

	c, err := newClient(eth, settings, creds, logger)
	if err != nil {
		eth.Close()
		return nil, err
	}
	c.eth = eth

	var chainID *big.Int
	if err := c.withRetry(ctx, "eth_chainId", func(ctx context.Context) error {
		var cerr error
		chainID, cerr = c.backend.ChainID(ctx)
		return cerr
	}); err != nil {
		eth.Close()
		return nil, &entity.RPCError{Op: "eth_chainId", Err: err}
	}
	c.chainID = chainID

	c.log.Info("chain client connected",
		zap.String("network", settings.NetworkName()),
		zap.String("chainId", chainID.String()),
		zap.Bool("readOnly", !c.CanWrite()))
	return c, nil
}

// NewClientWithBackend builds a client over an injected backend, bypassing
// the dial. Used by tests and by callers that manage their own connection.
func NewClientWithBackend(backend Backend, chainID *big.Int, settings entity.NetworkSettings, creds Credentials, logger *zap.Logger) (Client, error) {
	c, err := newClient(backend, settings, creds, logger)
	if err != nil {
		return nil, err
	}
	c.chainID = chainID
	return c, nil
}

func newClient(backend Backend, settings entity.NetworkSettings, creds Credentials, logger *zap.Logger) (*client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &client{
		backend:  backend,
		settings: settings,
		nonces:   newNonceLedger(),
		log:      logger.Named("ChainClient"),
	}
	if settings.RateLimit > 0 {
		burst := settings.RateBurst
		if burst < 1 {
			burst = settings.RateLimit
		}
		c.limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), burst)
	}

	if keyHex := strings.TrimSpace(creds.PrivateKey); keyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
		if err != nil {
			return nil, &entity.ConfigError{Reason: "account private key is not a valid secp256k1 hex key"}
		}
		c.key = key
		c.address = crypto.PubkeyToAddress(key.PublicKey)
		if addr := strings.TrimSpace(creds.Address); addr != "" && common.HexToAddress(addr) != c.address {
			return nil, &entity.ConfigError{Reason: "account address does not match the configured private key"}
		}
	} else if addr := strings.TrimSpace(creds.Address); addr != "" {
		if !common.IsHexAddress(addr) {
			return nil, &entity.ConfigError{Reason: "account address is not a valid hex address"}
		}
		c.address = common.HexToAddress(addr)
	}
	return c, nil
}

func (c *client) Address() common.Address { return c.address }

func (c *client) ChainID() *big.Int { return c.chainID }

func (c *client) CanWrite() bool { return c.key != nil }

// Close releases the RPC connection. Safe on clients built over an injected
// backend.
func (c *client) Close() {
	if c.eth != nil {
		c.eth.Close()
	}
}

func (c *client) Call(ctx context.Context, inv *contracts.Invocation) ([]any, error) {
	if !inv.ReadOnly() {
		return nil, ErrWriteThroughCall
	}

	data, err := inv.CallData()
	if err != nil {
		return nil, &entity.RPCError{Op: "eth_call", Err: err}
	}
	to := inv.Contract().Address
	msg := ethereum.CallMsg{From: c.address, To: &to, Data: data}

	var raw []byte
	if err := c.withRetry(ctx, "eth_call", func(ctx context.Context) error {
		var cerr error
		raw, cerr = c.backend.CallContract(ctx, msg, nil)
		return cerr
	}); err != nil {
		// Revert reasons arrive as the node's error and are preserved here.
		return nil, &entity.RPCError{Op: "eth_call", Err: err}
	}

	out, err := inv.Unpack(raw)
	if err != nil {
		return nil, &entity.RPCError{Op: "eth_call", Err: err}
	}
	return out, nil
}

func (c *client) BuildTransaction(ctx context.Context, inv *contracts.Invocation, sender common.Address, value *big.Int) (*entity.UnsignedTx, error) {
	if !c.CanWrite() {
		return nil, &entity.ConfigError{Reason: "no account credential configured; chain client is read-only"}
	}
	if inv.ReadOnly() {
		return nil, ErrReadThroughBuild
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() > 0 && !inv.Payable() {
		return nil, &entity.TxBuildError{Reason: inv.Name() + " is not payable but a value was supplied"}
	}
	if sender == (common.Address{}) {
		sender = c.address
	}

	data, err := inv.CallData()
	if err != nil {
		return nil, &entity.TxBuildError{Reason: "calldata encoding failed", Err: err}
	}
	to := inv.Contract().Address
	msg := ethereum.CallMsg{From: sender, To: &to, Value: value, Data: data}

	// A failing estimate means the call would revert with this state, so the
	// whole build is abandoned before a nonce is reserved.
	var gas uint64
	if err := c.withRetry(ctx, "eth_estimateGas", func(ctx context.Context) error {
		var gerr error
		gas, gerr = c.backend.EstimateGas(ctx, msg)
		return gerr
	}); err != nil {
		return nil, &entity.TxBuildError{Reason: "gas estimation failed", Err: err}
	}

	var gasPrice *big.Int
	if err := c.withRetry(ctx, "eth_gasPrice", func(ctx context.Context) error {
		var perr error
		gasPrice, perr = c.backend.SuggestGasPrice(ctx)
		return perr
	}); err != nil {
		return nil, &entity.TxBuildError{Reason: "gas price lookup failed", Err: err}
	}

	nonce, err := c.nonces.reserve(sender, func() (uint64, error) {
		var n uint64
		rerr := c.withRetry(ctx, "eth_getTransactionCount", func(ctx context.Context) error {
			var nerr error
			n, nerr = c.backend.PendingNonceAt(ctx, sender)
			return nerr
		})
		return n, rerr
	})
	if err != nil {
		return nil, &entity.TxBuildError{Reason: "nonce acquisition failed", Err: err}
	}

	c.log.Debug("transaction built",
		zap.String("function", inv.Name()),
		zap.String("from", sender.Hex()),
		zap.String("to", to.Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas", gas))

	return &entity.UnsignedTx{
		From:     sender,
		To:       to,
		Data:     data,
		Value:    value,
		Nonce:    nonce,
		Gas:      gas,
		GasPrice: gasPrice,
		ChainID:  c.chainID,
	}, nil
}

func (c *client) SignAndSendTransaction(ctx context.Context, utx *entity.UnsignedTx) (string, error) {
	if !c.CanWrite() {
		return "", &entity.ConfigError{Reason: "no account credential configured; chain client is read-only"}
	}
	if utx.From != c.address {
		return "", &entity.TxSendError{Reason: "unsigned transaction sender does not match the held credential"}
	}

	tx := types.NewTransaction(utx.Nonce, utx.To, utx.Value, utx.Gas, utx.GasPrice, utx.Data)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(utx.ChainID), c.key)
	if err != nil {
		return "", &entity.TxSendError{Reason: "signing failed", Err: err}
	}

	// Broadcast is deliberately outside the retry policy: a timed-out send
	// may still have reached the mempool and a retry could double-submit.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &entity.TxSendError{Reason: "rate limiter interrupted", Err: err}
		}
	}
	sendCtx := ctx
	if c.settings.RPCTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, c.settings.RPCTimeout)
		defer cancel()
	}
	metrics.RPCAttempts.WithLabelValues("eth_sendRawTransaction").Inc()
	if err := c.backend.SendTransaction(sendCtx, signed); err != nil {
		metrics.TxSendFailures.Inc()
		return "", &entity.TxSendError{Reason: "broadcast rejected by node", Err: err}
	}
	metrics.TxSubmitted.Inc()

	hash := signed.Hash().Hex()
	c.log.Info("transaction submitted",
		zap.String("txHash", hash),
		zap.Uint64("nonce", utx.Nonce))
	return hash, nil
}

func (c *client) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := c.withRetry(ctx, "eth_getBalance", func(ctx context.Context) error {
		var berr error
		balance, berr = c.backend.BalanceAt(ctx, account, nil)
		return berr
	}); err != nil {
		return nil, &entity.RPCError{Op: "eth_getBalance", Err: err}
	}
	return balance, nil
}
