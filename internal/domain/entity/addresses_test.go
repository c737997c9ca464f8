package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestDefaultMainnetAddressesValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultMainnetAddresses().Validate(); err != nil {
		t.Fatalf("known deployments rejected: %v", err)
	}
}

func TestValidateNamesTheMissingAddress(t *testing.T) {
	t.Parallel()

	book := DefaultMainnetAddresses()
	book.KineticKSFLR = common.Address{}

	err := book.Validate()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(cfgErr.Reason, "kineticKsflr") {
		t.Fatalf("error does not name the missing address: %s", cfgErr.Reason)
	}
}

func TestValidateIgnoresDocumentRegistry(t *testing.T) {
	t.Parallel()

	book := DefaultMainnetAddresses()
	if book.DocumentRegistry != (common.Address{}) {
		t.Fatal("fixture assumes no default registry")
	}
	if err := book.Validate(); err != nil {
		t.Fatalf("optional registry must not fail validation: %v", err)
	}
}

func TestContractsActive(t *testing.T) {
	t.Parallel()

	flare := AddressBook{SceptreSFLR: common.Address{1}}
	coston2 := AddressBook{SceptreSFLR: common.Address{2}}
	c := Contracts{Flare: flare, Coston2: coston2}

	if c.Active(false).SceptreSFLR != flare.SceptreSFLR {
		t.Fatal("mainnet selection returned the wrong table")
	}
	if c.Active(true).SceptreSFLR != coston2.SceptreSFLR {
		t.Fatal("testnet selection returned the wrong table")
	}
}

func TestNetworkName(t *testing.T) {
	t.Parallel()

	if got := (NetworkSettings{IsTestnet: true}).NetworkName(); got != "coston2" {
		t.Fatalf("expected coston2, got %s", got)
	}
	if got := (NetworkSettings{}).NetworkName(); got != "flare" {
		t.Fatalf("expected flare, got %s", got)
	}
}
