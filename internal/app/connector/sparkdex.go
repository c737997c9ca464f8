package connector

import (
	"context"
	"math/big"

	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/chain"
	"flarekit/internal/infrastructure/contracts"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const sparkdexProtocol = "sparkdex"

// Uniswap V3 style fee tiers, in hundredths of a basis point.
const (
	FeeTierLow    = 500
	FeeTierMedium = 3000
	FeeTierHigh   = 10000
)

// SwapParams mirrors the exactInputSingle parameter struct of the V3 swap
// router. Field order matters for ABI encoding.
type SwapParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

// SparkDEX connects to the SparkDEX V3 swap router.
type SparkDEX struct {
	base
	router *contracts.BoundContract
}

// NewSparkDEX binds the swap router on the active network.
func NewSparkDEX(client chain.Client, book entity.AddressBook, logger *zap.Logger) (*SparkDEX, error) {
	if err := requireAddress(sparkdexProtocol, "swap router", book.SparkDEXSwapRouter); err != nil {
		return nil, err
	}
	return &SparkDEX{
		base:   base{client: client, log: logger.Named("SparkDEXConnector")},
		router: contracts.Bind("SparkDEXRouter", book.SparkDEXSwapRouter, contracts.MustLoad("SparkDEXRouter")),
	}, nil
}

func (d *SparkDEX) Protocol() string { return sparkdexProtocol }

// SwapExactInputSingle swaps a fixed input amount of one token for as much
// as possible of another through a single pool. The input token must already
// be approved for the router.
func (d *SparkDEX) SwapExactInputSingle(ctx context.Context, params SwapParams) (string, error) {
	if params.Recipient == (common.Address{}) {
		params.Recipient = d.client.Address()
	}
	if params.SqrtPriceLimitX96 == nil {
		params.SqrtPriceLimitX96 = new(big.Int)
	}
	if params.AmountOutMinimum == nil {
		params.AmountOutMinimum = new(big.Int)
	}
	return d.submit(ctx, sparkdexProtocol, "swapExactInputSingle", d.router, nil,
		"exactInputSingle", params)
}

// SwapOutputParams mirrors the exactOutputSingle parameter struct: a fixed
// output amount bought for at most AmountInMaximum of the input token.
type SwapOutputParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountOut         *big.Int
	AmountInMaximum   *big.Int
	SqrtPriceLimitX96 *big.Int
}

// SwapExactOutputSingle swaps as little as possible of one token for a fixed
// output amount of another through a single pool.
func (d *SparkDEX) SwapExactOutputSingle(ctx context.Context, params SwapOutputParams) (string, error) {
	if params.Recipient == (common.Address{}) {
		params.Recipient = d.client.Address()
	}
	if params.SqrtPriceLimitX96 == nil {
		params.SqrtPriceLimitX96 = new(big.Int)
	}
	return d.submit(ctx, sparkdexProtocol, "swapExactOutputSingle", d.router, nil,
		"exactOutputSingle", params)
}

// FactoryAddress returns the V3 factory contract behind the router.
func (d *SparkDEX) FactoryAddress(ctx context.Context) (common.Address, error) {
	return d.readAddress(ctx, sparkdexProtocol, "factory", d.router, "factory")
}

// WETH9Address returns the wrapped native token contract the router uses.
func (d *SparkDEX) WETH9Address(ctx context.Context) (common.Address, error) {
	return d.readAddress(ctx, sparkdexProtocol, "weth9", d.router, "WETH9")
}
