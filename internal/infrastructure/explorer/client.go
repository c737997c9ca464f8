package explorer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client defines the interface for the Blockscout-compatible explorer API.
type Client interface {
	// GetContractABI fetches the verified ABI JSON of a contract.
	GetContractABI(ctx context.Context, address string) (string, error)
	// GetTransactionStatus reports the receipt status of a mined transaction:
	// "1" for success, "0" for failure.
	GetTransactionStatus(ctx context.Context, txHash string) (string, error)
}

// apiEnvelope is the standard Blockscout response wrapper.
type apiEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Result  jsoniter.RawMessage `json:"result"`
}

type clientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewClient creates a new explorer client. ABI lookups are cached because
// verified contract source never changes for a given address.
func NewClient(baseURL string, timeout time.Duration, abiCache *cache.Cache, logger *zap.Logger) Client {
	return &clientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		cache:   abiCache,
		logger:  logger.Named("ExplorerClient"),
	}
}

func (c *clientImpl) GetContractABI(ctx context.Context, address string) (string, error) {
	cacheKey := "abi:" + strings.ToLower(address)
	if cached, found := c.cache.Get(cacheKey); found {
		c.logger.Debug("Explorer ABI cache hit", zap.String("address", address))
		return cached.(string), nil
	}

	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getabi")
	params.Set("address", address)

	result, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}

	var abiJSON string
	if err := json.Unmarshal(result, &abiJSON); err != nil {
		return "", fmt.Errorf("failed to unmarshal explorer ABI result for %s: %w", address, err)
	}

	c.cache.Set(cacheKey, abiJSON, cache.DefaultExpiration)
	c.logger.Debug("Fetched contract ABI from explorer", zap.String("address", address))
	return abiJSON, nil
}

func (c *clientImpl) GetTransactionStatus(ctx context.Context, txHash string) (string, error) {
	params := url.Values{}
	params.Set("module", "transaction")
	params.Set("action", "gettxreceiptstatus")
	params.Set("txhash", txHash)

	result, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(result, &status); err != nil {
		return "", fmt.Errorf("failed to unmarshal explorer receipt status for %s: %w", txHash, err)
	}
	return status.Status, nil
}

func (c *clientImpl) get(ctx context.Context, params url.Values) (jsoniter.RawMessage, error) {
	requestURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("Requesting explorer API", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute explorer request", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute explorer request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Explorer API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return nil, fmt.Errorf("explorer API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explorer response from %s: %w. Body: %s", requestURL, err, string(rawBody))
	}
	if envelope.Status != "1" {
		return nil, fmt.Errorf("explorer API returned error status for %s: %s", requestURL, envelope.Message)
	}
	return envelope.Result, nil
}
