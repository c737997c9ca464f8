package chain

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// nonceLedger hands out transaction nonces per sending account. The first
// reservation for an account seeds the counter from the chain; every later
// reservation increments in memory, so concurrent builds from the same
// account can never observe the same nonce. Seeding runs under the
// per-account lock, which also serializes the initial chain read against
// concurrent reservations for that account.
type nonceLedger struct {
	mu       sync.Mutex
	accounts map[common.Address]*accountNonce
}

type accountNonce struct {
	mu     sync.Mutex
	seeded bool
	next   uint64
}

func newNonceLedger() *nonceLedger {
	return &nonceLedger{accounts: make(map[common.Address]*accountNonce)}
}

// reserve returns the next nonce for addr and advances the counter. seed is
// called at most once per account, on first reservation; a seed failure
// leaves the account unseeded so the next reservation retries it.
func (l *nonceLedger) reserve(addr common.Address, seed func() (uint64, error)) (uint64, error) {
	l.mu.Lock()
	a, ok := l.accounts[addr]
	if !ok {
		a = &accountNonce{}
		l.accounts[addr] = a
	}
	l.mu.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.seeded {
		n, err := seed()
		if err != nil {
			return 0, err
		}
		a.next = n
		a.seeded = true
	}
	n := a.next
	a.next++
	return n, nil
}
