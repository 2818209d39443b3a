package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything read from the environment. A .env file is loaded
// when present; a deployed container just sets real variables.
type Config struct {
	Port              int
	MinPlayers        int  // 2 for normal play, 1 for test/debug
	DebugMode         bool
	RPCURL            string
	ContractAddress   string // empty disables the chain mirror
	ChainPollInterval time.Duration
}

const (
	defaultPort         = 3000
	defaultMinPlayers   = 1
	defaultRPCURL       = "https://testnet.evm.nodes.onflow.org"
	defaultPollInterval = 5 * time.Second
)

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              defaultPort,
		MinPlayers:        defaultMinPlayers,
		DebugMode:         true,
		RPCURL:            defaultRPCURL,
		ChainPollInterval: defaultPollInterval,
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.MinPlayers, err = envInt("MIN_PLAYERS", cfg.MinPlayers); err != nil {
		return Config{}, err
	}
	if cfg.MinPlayers < 1 {
		return Config{}, fmt.Errorf("config: MIN_PLAYERS must be at least 1")
	}
	if cfg.DebugMode, err = envBool("DEBUG_MODE", cfg.DebugMode); err != nil {
		return Config{}, err
	}
	cfg.RPCURL = envStr("RPC_URL", cfg.RPCURL)
	cfg.ContractAddress = envStr("CONTRACT_ADDRESS", "")
	if cfg.ChainPollInterval, err = envDuration("CHAIN_POLL_INTERVAL", cfg.ChainPollInterval); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MinAliveToEnd is the alive count at or below which a match ends. In
// debug single-player mode the lone player gets to play the clock out,
// so the match only ends when nobody is left.
func (c Config) MinAliveToEnd() int {
	if c.DebugMode && c.MinPlayers == 1 {
		return 0
	}
	return 1
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}
	return d, nil
}
