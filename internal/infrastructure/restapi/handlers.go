package restapi

import (
	"math/big"
	"net/http"
	"time"

	"flarekit/internal/app/connector"
	"flarekit/internal/app/service"
	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/explorer"
	"flarekit/internal/ingestion"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers carries the application services the HTTP endpoints delegate to.
// Poster is nil when the document registry is not configured; the ingestion
// endpoint then reports the feature unavailable.
type Handlers struct {
	positions *service.PositionsService
	kinetic   *connector.Kinetic
	stargate  *connector.Stargate
	sparkdex  *connector.SparkDEX
	poster    *ingestion.Poster
	explorer  explorer.Client
	network   string
	logger    *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(positions *service.PositionsService, kinetic *connector.Kinetic, stargate *connector.Stargate, sparkdex *connector.SparkDEX, poster *ingestion.Poster, exp explorer.Client, network string, logger *zap.Logger) *Handlers {
	return &Handlers{
		positions: positions,
		kinetic:   kinetic,
		stargate:  stargate,
		sparkdex:  sparkdex,
		poster:    poster,
		explorer:  exp,
		network:   network,
		logger:    logger.Named("RESTHandlers"),
	}
}

// GetPositions returns the per-protocol holdings of an address.
func (h *Handlers) GetPositions(c *gin.Context) {
	addr := c.Param("address")
	if !common.IsHexAddress(addr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account address"})
		return
	}

	report, err := h.positions.Positions(c.Request.Context(), common.HexToAddress(addr))
	if err != nil {
		h.logger.Error("positions aggregation failed", zap.String("address", addr), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetExchangeRate returns the lending market's stored exchange and supply
// rates.
func (h *Handlers) GetExchangeRate(c *gin.Context) {
	if h.kinetic == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lending market is not configured on this network"})
		return
	}
	ctx := c.Request.Context()

	exchangeRate, err := h.kinetic.ExchangeRate(ctx)
	if err != nil {
		h.logger.Error("exchange rate read failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	supplyRate, err := h.kinetic.SupplyRate(ctx)
	if err != nil {
		h.logger.Error("supply rate read failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"protocol":               h.kinetic.Protocol(),
		"exchangeRate":           exchangeRate.String(),
		"supplyRatePerTimestamp": supplyRate.String(),
	})
}

// GetBridgeInfo returns the static Stargate routing facts.
func (h *Handlers) GetBridgeInfo(c *gin.Context) {
	if h.stargate == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "bridge is not configured on this network"})
		return
	}
	c.JSON(http.StatusOK, h.stargate.BridgeInfo(h.network))
}

// GetTransactionStatus reports the receipt status of a transaction through
// the explorer: success, failed or pending.
func (h *Handlers) GetTransactionStatus(c *gin.Context) {
	txHash := c.Param("hash")
	status, err := h.explorer.GetTransactionStatus(c.Request.Context(), txHash)
	if err != nil {
		h.logger.Error("transaction status lookup failed", zap.String("txHash", txHash), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	mapped := entity.TxStatusPending
	switch status {
	case "1":
		mapped = entity.TxStatusSuccess
	case "0":
		mapped = entity.TxStatusFailed
	}
	c.JSON(http.StatusOK, gin.H{"txHash": txHash, "status": mapped})
}

// GetContractABI returns the verified ABI of a contract from the explorer.
func (h *Handlers) GetContractABI(c *gin.Context) {
	addr := c.Param("address")
	if !common.IsHexAddress(addr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract address"})
		return
	}

	abiJSON, err := h.explorer.GetContractABI(c.Request.Context(), addr)
	if err != nil {
		h.logger.Error("contract ABI lookup failed", zap.String("address", addr), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr, "abi": abiJSON})
}

// swapRequest is the swap endpoint's body. Amounts are decimal wei strings.
type swapRequest struct {
	TokenIn          string `json:"tokenIn" binding:"required"`
	TokenOut         string `json:"tokenOut" binding:"required"`
	Fee              int64  `json:"fee" binding:"required"`
	AmountIn         string `json:"amountIn" binding:"required"`
	AmountOutMinimum string `json:"amountOutMinimum"`
	DeadlineSeconds  int64  `json:"deadlineSeconds"`
}

// PostSwap executes an exact-input single-pool swap with the configured
// account.
func (h *Handlers) PostSwap(c *gin.Context) {
	if h.sparkdex == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "swap router is not configured on this network"})
		return
	}

	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !common.IsHexAddress(req.TokenIn) || !common.IsHexAddress(req.TokenOut) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tokenIn and tokenOut must be hex addresses"})
		return
	}
	switch req.Fee {
	case connector.FeeTierLow, connector.FeeTierMedium, connector.FeeTierHigh:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "fee must be one of the pool fee tiers 500, 3000 or 10000"})
		return
	}
	amountIn, ok := new(big.Int).SetString(req.AmountIn, 10)
	if !ok || amountIn.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amountIn must be a positive decimal wei amount"})
		return
	}
	amountOutMin := new(big.Int)
	if req.AmountOutMinimum != "" {
		if amountOutMin, ok = new(big.Int).SetString(req.AmountOutMinimum, 10); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amountOutMinimum must be a decimal wei amount"})
			return
		}
	}
	deadlineSeconds := req.DeadlineSeconds
	if deadlineSeconds <= 0 {
		deadlineSeconds = 300
	}

	txHash, err := h.sparkdex.SwapExactInputSingle(c.Request.Context(), connector.SwapParams{
		TokenIn:          common.HexToAddress(req.TokenIn),
		TokenOut:         common.HexToAddress(req.TokenOut),
		Fee:              big.NewInt(req.Fee),
		Deadline:         big.NewInt(time.Now().Unix() + deadlineSeconds),
		AmountIn:         amountIn,
		AmountOutMinimum: amountOutMin,
	})
	if err != nil {
		h.logger.Error("swap submission failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"txHash": txHash})
}

// postDocumentRequest is the ingestion endpoint's body: a template and the
// document extracted against it.
type postDocumentRequest struct {
	Template ingestion.Template `json:"template" binding:"required"`
	Document ingestion.Document `json:"document" binding:"required"`
}

// PostDocument validates and registers an extracted document on chain.
func (h *Handlers) PostDocument(c *gin.Context) {
	if h.poster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document registry is not configured on this network"})
		return
	}

	var req postDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txHash, err := h.poster.Post(c.Request.Context(), req.Template, req.Document)
	if err != nil {
		h.logger.Error("document registration failed",
			zap.String("template", req.Document.Template),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"txHash": txHash})
}
