package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/ykhdr/crack-hash/common/internal/kdl"
)

const DefaultConfigPath = "./config/config.kdl"

// Load decodes the KDL file at path over defaultCfg and configures logging
// from the result. An empty path falls back to DefaultConfigPath when that
// file exists, and to defaultCfg alone otherwise.
func Load[T any](path string, defaultCfg T) (*T, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err != nil {
			setupLogger(&defaultCfg)
			return &defaultCfg, nil
		}
		path = DefaultConfigPath
	}
	cfg, err := kdl.Unmarshal[T](path, defaultCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "unmarshal kdl %s", path)
	}
	setupLogger(&cfg)
	return &cfg, nil
}

// Decode is Load for an in-memory document.
func Decode[T any](data []byte, defaultCfg T) (*T, error) {
	cfg, err := kdl.Decode[T](data, defaultCfg)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal kdl")
	}
	setupLogger(&cfg)
	return &cfg, nil
}
