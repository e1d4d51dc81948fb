package repository

import (
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)

	// Load merges the built-in defaults, the optional config file and the
	// environment, and validates the result.
	Load(filePath string) (*types.Config, error)
}
