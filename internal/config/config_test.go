package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flarekit/internal/domain/entity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, "network:\n  isTestnet: true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	settings := cfg.NetworkSettings()
	if settings.RPCTimeout != 5*time.Second {
		t.Fatalf("expected default timeout 5s, got %v", settings.RPCTimeout)
	}
	if settings.MaxRetries != 3 {
		t.Fatalf("expected default maxRetries 3, got %d", settings.MaxRetries)
	}
	if settings.RetryDelay != 5*time.Second {
		t.Fatalf("expected default retryDelay 5s, got %v", settings.RetryDelay)
	}
	if settings.NetworkName() != "coston2" {
		t.Fatalf("expected coston2, got %s", settings.NetworkName())
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Ingestion.MaxPayloadBytes != 16*1024 {
		t.Fatalf("expected default payload limit, got %d", cfg.Ingestion.MaxPayloadBytes)
	}
}

func TestLoadConfigFillsMainnetDefaultsWhenTableEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, "network:\n  isTestnet: false\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	books, err := cfg.ContractAddresses()
	if err != nil {
		t.Fatalf("contract addresses: %v", err)
	}
	want := entity.DefaultMainnetAddresses()
	if books.Flare.SceptreSFLR != want.SceptreSFLR {
		t.Fatalf("expected default sFLR address %s, got %s", want.SceptreSFLR.Hex(), books.Flare.SceptreSFLR.Hex())
	}
}

func TestLoadConfigRejectsPartialMainnetTable(t *testing.T) {
	t.Parallel()

	// Explicit but incomplete mainnet table: defaults must not paper over it.
	_, err := LoadConfig(writeConfig(t, `
network:
  isTestnet: false
contracts:
  flare:
    sceptreSflr: "0x12e605bc104e93B45e1aD99F9e555f659051c2BB"
`))
	var cfgErr *entity.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for partial mainnet table, got %v", err)
	}
}

func TestLoadConfigAllowsPartialTestnetTable(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, `
network:
  isTestnet: true
contracts:
  coston2:
    sceptreSflr: "0x0000000000000000000000000000000000000001"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	books, err := cfg.ContractAddresses()
	if err != nil {
		t.Fatalf("contract addresses: %v", err)
	}
	book := books.Active(true)
	if book.SceptreSFLR.Hex() != "0x0000000000000000000000000000000000000001" {
		t.Fatalf("unexpected sFLR address %s", book.SceptreSFLR.Hex())
	}
	if book.KineticKSFLR != (entity.AddressBook{}).KineticKSFLR {
		t.Fatal("unset testnet address must stay zero")
	}
}

func TestLoadConfigRejectsInvalidHexAddress(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, `
network:
  isTestnet: true
contracts:
  coston2:
    sceptreSflr: "not-an-address"
`))
	var cfgErr *entity.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for invalid hex, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestAccountPrivateKeyComesFromEnvironment(t *testing.T) {
	t.Setenv("TEST_FLARE_KEY", "deadbeef")

	a := AccountConfig{PrivateKeyEnv: "TEST_FLARE_KEY"}
	if got := a.PrivateKey(); got != "deadbeef" {
		t.Fatalf("expected key from environment, got %q", got)
	}
	if got := (AccountConfig{}).PrivateKey(); got != "" {
		t.Fatalf("expected empty key without env binding, got %q", got)
	}
}
