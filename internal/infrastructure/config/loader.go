package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/pkg/filesystem"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// FileLoader loads YAML configuration from ~/.cider/config.yaml (overridable via CIDER_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file yields the defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	data, err := os.ReadFile(l.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved configuration file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv(domain.EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".cider", "config.yaml")
}

// Save writes cfg to Path, creating the directory when needed.
func (l *FileLoader) Save(cfg domain.Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Secret looks up key in the process environment, then in the .env file next
// to the config file.
func (l *FileLoader) Secret(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	values, err := godotenv.Read(filepath.Join(filepath.Dir(l.Path()), ".env"))
	if err != nil {
		return ""
	}
	return values[key]
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Amend: domain.AmendSettings{
			Strategy: domain.StrategyAuto,
		},
		Doctor: domain.DoctorSettings{
			Tools: domain.ToolPaths{
				Which:      domain.DefaultWhichCommand,
				Xcodebuild: domain.DefaultXcodebuildCommand,
				Security:   domain.DefaultSecurityCommand,
			},
			DeveloperFilter:    domain.DefaultDeveloperFilter,
			DistributionFilter: domain.DefaultDistributionFilter,
		},
		Output: domain.OutputSettings{
			Color: domain.ColorAuto,
		},
		Identity: domain.IdentitySettings{
			PasswordEnv: domain.DefaultPasswordEnv,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Amend.Strategy == "" {
		cfg.Amend.Strategy = def.Amend.Strategy
	}
	if cfg.Doctor.Tools.Which == "" {
		cfg.Doctor.Tools.Which = def.Doctor.Tools.Which
	}
	if cfg.Doctor.Tools.Xcodebuild == "" {
		cfg.Doctor.Tools.Xcodebuild = def.Doctor.Tools.Xcodebuild
	}
	if cfg.Doctor.Tools.Security == "" {
		cfg.Doctor.Tools.Security = def.Doctor.Tools.Security
	}
	if cfg.Doctor.DeveloperFilter == "" {
		cfg.Doctor.DeveloperFilter = def.Doctor.DeveloperFilter
	}
	if cfg.Doctor.DistributionFilter == "" {
		cfg.Doctor.DistributionFilter = def.Doctor.DistributionFilter
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = def.Output.Color
	}
	if cfg.Identity.PasswordEnv == "" {
		cfg.Identity.PasswordEnv = def.Identity.PasswordEnv
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
