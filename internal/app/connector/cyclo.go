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

const cycloProtocol = "cyclo"

// Cyclo connects to the Cyclo leveraged vault over sFLR. Depositing sFLR
// mints a matching pair of cysFLR tokens and ERC1155 receipts; both must be
// burned together to redeem.
type Cyclo struct {
	base
	vault   *contracts.BoundContract
	receipt *contracts.BoundContract
}

// NewCyclo binds the cysFLR vault and its receipt contract.
func NewCyclo(client chain.Client, book entity.AddressBook, logger *zap.Logger) (*Cyclo, error) {
	if err := requireAddress(cycloProtocol, "cysFLR vault", book.CycloCySFLRVault); err != nil {
		return nil, err
	}
	if err := requireAddress(cycloProtocol, "cysFLR receipt", book.CycloCySFLRReceipt); err != nil {
		return nil, err
	}
	return &Cyclo{
		base:    base{client: client, log: logger.Named("CycloConnector")},
		vault:   contracts.Bind("CycloVaultSFLR", book.CycloCySFLRVault, contracts.MustLoad("CycloVaultSFLR")),
		receipt: contracts.Bind("CycloReceiptSFLR", book.CycloCySFLRReceipt, contracts.MustLoad("CycloReceiptSFLR")),
	}, nil
}

func (c *Cyclo) Protocol() string { return cycloProtocol }

func (c *Cyclo) Symbol() string { return "cysFLR" }

// Deposit locks sFLR collateral and mints cysFLR plus a receipt. A zero
// recipient mints to the signing account, a zero minShareRatio accepts the
// current mint price, and receiptInfo is attached to the ERC1155 receipt.
func (c *Cyclo) Deposit(ctx context.Context, assets *big.Int, recipient common.Address, minShareRatio *big.Int, receiptInfo []byte) (string, error) {
	if recipient == (common.Address{}) {
		recipient = c.client.Address()
	}
	if minShareRatio == nil {
		minShareRatio = new(big.Int)
	}
	if receiptInfo == nil {
		receiptInfo = []byte{}
	}
	return c.submit(ctx, cycloProtocol, "deposit", c.vault, nil,
		"deposit", assets, recipient, minShareRatio, receiptInfo)
}

// Redeem burns cysFLR shares together with the receipt of the given id and
// releases the underlying sFLR. Zero recipient and owner default to the
// signing account.
func (c *Cyclo) Redeem(ctx context.Context, shares *big.Int, recipient, owner common.Address, receiptID *big.Int, receiptInfo []byte) (string, error) {
	if recipient == (common.Address{}) {
		recipient = c.client.Address()
	}
	if owner == (common.Address{}) {
		owner = c.client.Address()
	}
	if receiptInfo == nil {
		receiptInfo = []byte{}
	}
	return c.submit(ctx, cycloProtocol, "redeem", c.vault, nil,
		"redeem", shares, recipient, owner, receiptID, receiptInfo)
}

// BalanceOf returns the cysFLR token balance of an account.
func (c *Cyclo) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.readBig(ctx, cycloProtocol, "balanceOf", c.vault, "balanceOf", account)
}

// ReceiptBalance returns the ERC1155 receipt balance for a given id.
func (c *Cyclo) ReceiptBalance(ctx context.Context, account common.Address, id *big.Int) (*big.Int, error) {
	return c.readBig(ctx, cycloProtocol, "receiptBalance", c.receipt, "balanceOf", account, id)
}

// VaultAsset returns the address of the vault's underlying token.
func (c *Cyclo) VaultAsset(ctx context.Context) (common.Address, error) {
	return c.readAddress(ctx, cycloProtocol, "asset", c.vault, "asset")
}
