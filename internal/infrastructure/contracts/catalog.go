package contracts

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrUnknownContract is returned by Load for a name absent from the bundled
// catalog. Lookup is exact and case-sensitive.
var ErrUnknownContract = errors.New("contract definition not found")

// catalog maps a symbolic contract name to its bundled ABI definition. Only
// the functions the connectors actually invoke are included.
var catalog = map[string]string{
	"ERC20": `[
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
		{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
	]`,
	"SceptreSFLR": `[
		{"type":"function","name":"submit","stateMutability":"payable","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"requestWithdrawal","stateMutability":"nonpayable","inputs":[{"name":"shareAmount","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"claimWithdrawal","stateMutability":"nonpayable","inputs":[{"name":"requestId","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"getTotalPooledFlr","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"getPooledFlrByShares","stateMutability":"view","inputs":[{"name":"shareAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"getSharesByPooledFlr","stateMutability":"view","inputs":[{"name":"flrAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
	]`,
	"KineticKToken": `[
		{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"mintAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"redeem","stateMutability":"nonpayable","inputs":[{"name":"redeemTokens","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"exchangeRateStored","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"supplyRatePerTimestamp","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
	]`,
	"CycloVaultSFLR": `[
		{"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"},{"name":"minShareRatio","type":"uint256"},{"name":"receiptInformation","type":"bytes"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"redeem","stateMutability":"nonpayable","inputs":[{"name":"shares","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"},{"name":"id","type":"uint256"},{"name":"receiptInformation","type":"bytes"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"asset","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
	]`,
	"CycloReceiptSFLR": `[
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"id","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
	]`,
	"FirelightVault": `[
		{"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"claimWithdraw","stateMutability":"nonpayable","inputs":[{"name":"period","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"totalAssets","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"currentPeriod","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"withdrawalsOf","stateMutability":"view","inputs":[{"name":"period","type":"uint256"},{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
	]`,
	"SparkDEXRouter": `[
		{"type":"function","name":"exactInputSingle","stateMutability":"payable","inputs":[{"name":"params","type":"tuple","components":[
			{"name":"tokenIn","type":"address"},
			{"name":"tokenOut","type":"address"},
			{"name":"fee","type":"uint24"},
			{"name":"recipient","type":"address"},
			{"name":"deadline","type":"uint256"},
			{"name":"amountIn","type":"uint256"},
			{"name":"amountOutMinimum","type":"uint256"},
			{"name":"sqrtPriceLimitX96","type":"uint160"}
		]}],"outputs":[{"name":"amountOut","type":"uint256"}]},
		{"type":"function","name":"exactOutputSingle","stateMutability":"payable","inputs":[{"name":"params","type":"tuple","components":[
			{"name":"tokenIn","type":"address"},
			{"name":"tokenOut","type":"address"},
			{"name":"fee","type":"uint24"},
			{"name":"recipient","type":"address"},
			{"name":"deadline","type":"uint256"},
			{"name":"amountOut","type":"uint256"},
			{"name":"amountInMaximum","type":"uint256"},
			{"name":"sqrtPriceLimitX96","type":"uint160"}
		]}],"outputs":[{"name":"amountIn","type":"uint256"}]},
		{"type":"function","name":"factory","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
		{"type":"function","name":"WETH9","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
	]`,
	"DocumentRegistry": `[
		{"type":"function","name":"registerDocument","stateMutability":"nonpayable","inputs":[{"name":"docHash","type":"bytes32"},{"name":"docType","type":"string"},{"name":"payload","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"isRegistered","stateMutability":"view","inputs":[{"name":"docHash","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]}
	]`,
}

var (
	parsedMu sync.Mutex
	parsed   = make(map[string]abi.ABI)
)

// Load resolves a contract name from the bundled catalog and returns its
// parsed ABI. Parsing is done at most once per name.
func Load(name string) (abi.ABI, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if p, ok := parsed[name]; ok {
		return p, nil
	}
	raw, ok := catalog[name]
	if !ok {
		return abi.ABI{}, fmt.Errorf("%w: %q", ErrUnknownContract, name)
	}
	p, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		// Catalog entries are static; a parse failure is a packaging bug.
		return abi.ABI{}, fmt.Errorf("failed to parse bundled ABI %q: %w", name, err)
	}
	parsed[name] = p
	return p, nil
}

// MustLoad is Load for the static wiring paths where the name is a
// compile-time constant.
func MustLoad(name string) abi.ABI {
	p, err := Load(name)
	if err != nil {
		panic(err)
	}
	return p
}
