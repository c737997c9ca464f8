package config

import (
	"fmt"
	"os"
	"time"

	"flarekit/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the connector kit.
type Config struct {
	Network   NetworkConfig   `yaml:"network"`
	Account   AccountConfig   `yaml:"account"`
	Contracts ContractsConfig `yaml:"contracts"`
	Explorer  ExplorerConfig  `yaml:"explorer"`
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
	Ingestion IngestionConfig `yaml:"ingestion"`
}

// NetworkConfig selects the chain and bounds every RPC interaction.
type NetworkConfig struct {
	IsTestnet    bool   `yaml:"isTestnet"`
	RPCURL       string `yaml:"rpcURL"`
	RPCTimeoutMs int64  `yaml:"rpcTimeoutMs"`
	MaxRetries   int    `yaml:"maxRetries"`
	RetryDelayMs int64  `yaml:"retryDelayMs"`
	RateLimit    int    `yaml:"rateLimit"`
	BurstLimit   int    `yaml:"burstLimit"`
}

// AccountConfig identifies the sending account. The private key is read from
// the named environment variable, never from the config file.
type AccountConfig struct {
	Address       string `yaml:"address"`
	PrivateKeyEnv string `yaml:"privateKeyEnv"`
}

// PrivateKey resolves the key material from the environment. Empty means the
// process runs read-only.
func (a AccountConfig) PrivateKey() string {
	if a.PrivateKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.PrivateKeyEnv)
}

// AddressTable lists per-protocol contract addresses for one network as hex
// strings. Empty entries are legal only on testnet.
type AddressTable struct {
	SparkDEXUniversalRouter string `yaml:"sparkdexUniversalRouter"`
	SparkDEXSwapRouter      string `yaml:"sparkdexSwapRouter"`
	KineticComptroller      string `yaml:"kineticComptroller"`
	KineticKSFLR            string `yaml:"kineticKsflr"`
	SceptreSFLR             string `yaml:"sceptreSflr"`
	CycloCySFLRVault        string `yaml:"cycloCysflrVault"`
	CycloCySFLRReceipt      string `yaml:"cycloCysflrReceipt"`
	FirelightStXRPVault     string `yaml:"firelightStxrpVault"`
	StargateTokenMessaging  string `yaml:"stargateTokenMessaging"`
	StargateTreasurer       string `yaml:"stargateTreasurer"`
	StargateETHOFT          string `yaml:"stargateEthOft"`
	StargateUSDCOFT         string `yaml:"stargateUsdcOft"`
	StargateUSDTOFT         string `yaml:"stargateUsdtOft"`
	DocumentRegistry        string `yaml:"documentRegistry"`
}

func (t AddressTable) isEmpty() bool {
	return t == (AddressTable{})
}

// ContractsConfig holds the address tables of both supported networks.
type ContractsConfig struct {
	Flare   AddressTable `yaml:"flare"`
	Coston2 AddressTable `yaml:"coston2"`
}

// ExplorerConfig points at the Blockscout-compatible explorer API.
type ExplorerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// ServerConfig holds the HTTP serving parameters.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// CacheConfig holds TTLs for the explorer response cache.
type CacheConfig struct {
	DefaultExpirationMinutes int `yaml:"defaultExpirationMinutes"`
	CleanupIntervalMinutes   int `yaml:"cleanupIntervalMinutes"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// IngestionConfig bounds the document-ingestion pipeline.
type IngestionConfig struct {
	MaxPayloadBytes int `yaml:"maxPayloadBytes"`
}

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the mainnet contract table fail-fast.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.applyDefaults()

	// The authoritative table must be coherent before any connector runs.
	if _, err := cfg.ContractAddresses(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Network.RPCURL == "" {
		if c.Network.IsTestnet {
			c.Network.RPCURL = "https://coston2-api.flare.network/ext/C/rpc"
		} else {
			c.Network.RPCURL = "https://flare-api.flare.network/ext/C/rpc"
		}
		logrus.Infof("Network.RPCURL not set, defaulting to %s", c.Network.RPCURL)
	}
	if c.Network.RPCTimeoutMs == 0 {
		c.Network.RPCTimeoutMs = 5000
	}
	if c.Network.MaxRetries == 0 {
		c.Network.MaxRetries = 3
	}
	if c.Network.RetryDelayMs == 0 {
		c.Network.RetryDelayMs = 5000
	}
	if c.Network.RateLimit == 0 {
		c.Network.RateLimit = 10
	}
	if c.Network.BurstLimit == 0 {
		c.Network.BurstLimit = 20
	}
	if c.Explorer.BaseURL == "" {
		if c.Network.IsTestnet {
			c.Explorer.BaseURL = "https://coston2-explorer.flare.network/api"
		} else {
			c.Explorer.BaseURL = "https://flare-explorer.flare.network/api"
		}
		logrus.Infof("Explorer.BaseURL not set, defaulting to %s", c.Explorer.BaseURL)
	}
	if c.Explorer.RequestTimeoutMillis == 0 {
		c.Explorer.RequestTimeoutMillis = 10000
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Cache.DefaultExpirationMinutes == 0 {
		c.Cache.DefaultExpirationMinutes = 60
	}
	if c.Cache.CleanupIntervalMinutes == 0 {
		c.Cache.CleanupIntervalMinutes = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Ingestion.MaxPayloadBytes == 0 {
		c.Ingestion.MaxPayloadBytes = 16 * 1024
	}
	// An entirely absent mainnet table means "use the known deployments";
	// a partially filled one is kept as-is so validation can reject it.
	if c.Contracts.Flare.isEmpty() {
		c.Contracts.Flare = mainnetDefaults()
	}
}

// NetworkSettings converts the raw durations into the resolved settings
// record consumed by the chain client.
func (c *Config) NetworkSettings() entity.NetworkSettings {
	return entity.NetworkSettings{
		IsTestnet:  c.Network.IsTestnet,
		RPCURL:     c.Network.RPCURL,
		RPCTimeout: time.Duration(c.Network.RPCTimeoutMs) * time.Millisecond,
		MaxRetries: c.Network.MaxRetries,
		RetryDelay: time.Duration(c.Network.RetryDelayMs) * time.Millisecond,
		RateLimit:  c.Network.RateLimit,
		RateBurst:  c.Network.BurstLimit,
	}
}

// ContractAddresses parses both address tables and enforces the mainnet
// fail-fast invariant: every protocol address must be populated on the
// mainnet table. The testnet table may be partial.
func (c *Config) ContractAddresses() (entity.Contracts, error) {
	flare, err := toAddressBook("flare", c.Contracts.Flare)
	if err != nil {
		return entity.Contracts{}, err
	}
	coston2, err := toAddressBook("coston2", c.Contracts.Coston2)
	if err != nil {
		return entity.Contracts{}, err
	}
	if err := flare.Validate(); err != nil {
		return entity.Contracts{}, err
	}
	return entity.Contracts{Flare: flare, Coston2: coston2}, nil
}

func toAddressBook(network string, t AddressTable) (entity.AddressBook, error) {
	var book entity.AddressBook
	fields := []struct {
		name string
		hex  string
		dst  *common.Address
	}{
		{"sparkdexUniversalRouter", t.SparkDEXUniversalRouter, &book.SparkDEXUniversalRouter},
		{"sparkdexSwapRouter", t.SparkDEXSwapRouter, &book.SparkDEXSwapRouter},
		{"kineticComptroller", t.KineticComptroller, &book.KineticComptroller},
		{"kineticKsflr", t.KineticKSFLR, &book.KineticKSFLR},
		{"sceptreSflr", t.SceptreSFLR, &book.SceptreSFLR},
		{"cycloCysflrVault", t.CycloCySFLRVault, &book.CycloCySFLRVault},
		{"cycloCysflrReceipt", t.CycloCySFLRReceipt, &book.CycloCySFLRReceipt},
		{"firelightStxrpVault", t.FirelightStXRPVault, &book.FirelightStXRPVault},
		{"stargateTokenMessaging", t.StargateTokenMessaging, &book.StargateTokenMessaging},
		{"stargateTreasurer", t.StargateTreasurer, &book.StargateTreasurer},
		{"stargateEthOft", t.StargateETHOFT, &book.StargateETHOFT},
		{"stargateUsdcOft", t.StargateUSDCOFT, &book.StargateUSDCOFT},
		{"stargateUsdtOft", t.StargateUSDTOFT, &book.StargateUSDTOFT},
		{"documentRegistry", t.DocumentRegistry, &book.DocumentRegistry},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		if !common.IsHexAddress(f.hex) {
			return entity.AddressBook{}, &entity.ConfigError{
				Reason: fmt.Sprintf("contract address %q on %s is not a valid hex address: %s", f.name, network, f.hex),
			}
		}
		*f.dst = common.HexToAddress(f.hex)
	}
	return book, nil
}

func mainnetDefaults() AddressTable {
	b := entity.DefaultMainnetAddresses()
	return AddressTable{
		SparkDEXUniversalRouter: b.SparkDEXUniversalRouter.Hex(),
		SparkDEXSwapRouter:      b.SparkDEXSwapRouter.Hex(),
		KineticComptroller:      b.KineticComptroller.Hex(),
		KineticKSFLR:            b.KineticKSFLR.Hex(),
		SceptreSFLR:             b.SceptreSFLR.Hex(),
		CycloCySFLRVault:        b.CycloCySFLRVault.Hex(),
		CycloCySFLRReceipt:      b.CycloCySFLRReceipt.Hex(),
		FirelightStXRPVault:     b.FirelightStXRPVault.Hex(),
		StargateTokenMessaging:  b.StargateTokenMessaging.Hex(),
		StargateTreasurer:       b.StargateTreasurer.Hex(),
		StargateETHOFT:          b.StargateETHOFT.Hex(),
		StargateUSDCOFT:         b.StargateUSDCOFT.Hex(),
		StargateUSDTOFT:         b.StargateUSDTOFT.Hex(),
	}
}
