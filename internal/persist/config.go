package persist

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the nmmsd daemon's on-disk configuration, loaded the way
// tqw.LoadResourceBundle loads a TOML-based world file, scaled down to the
// handful of settings a reasoner daemon needs.
type Config struct {
	ListenAddress string `toml:"listen_address"`
	JWTKeyFile    string `toml:"jwt_key_file"`
	MaxDepth      int    `toml:"max_depth"`
	RQMode        bool   `toml:"rq_mode"`
	BaseFile      string `toml:"base_file"`
}

// DefaultConfig returns the configuration used when no config file is
// given.
func DefaultConfig() Config {
	return Config{
		ListenAddress: ":8080",
		MaxDepth:      25,
		RQMode:        false,
	}
}

// LoadConfig reads and decodes a TOML config file at path.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}
