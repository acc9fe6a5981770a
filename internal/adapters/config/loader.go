// Package config provides the configuration loader for dexopt.
package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var packageNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("duration", validateDuration)
	_ = v.RegisterValidation("package_name", validatePackageName)
	_ = v.RegisterValidation("env_key", validateEnvKey)
	return &Loader{logger: logger, validate: v}
}

// Load reads the configuration file at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	// #nosec G304 -- path comes from the command line or the default file name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := l.validate.Struct(&file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "path", path)
	}

	apply(cfg, &file)

	if cfg.PackageName == "" {
		l.logger.Warn("package_name is not set; the package service path will be unavailable")
	}

	return cfg, nil
}

func apply(cfg *domain.Config, file *File) {
	cfg.PackageName = file.PackageName
	cfg.InstructionSet = file.InstructionSet
	cfg.SDKInt = file.SDKInt
	cfg.Log.JSON = file.Log.JSON

	if file.Dex2oat != "" {
		cfg.Dex2oat = file.Dex2oat
	}
	for k, v := range file.CompilerEnv {
		cfg.CompilerEnv[k] = v
	}

	d := file.Daemon
	if d.Socket != "" {
		cfg.Daemon.SocketPath = d.Socket
	}
	if d.Registry != "" {
		cfg.Daemon.RegistryPath = d.Registry
	}
	if d.IdleTimeout != "" {
		// Validated by the duration rule.
		cfg.Daemon.IdleTimeout, _ = time.ParseDuration(d.IdleTimeout)
	}
	if d.Autostart != nil {
		cfg.Daemon.Autostart = *d.Autostart
	}
	cfg.Daemon.MetricsAddr = d.MetricsAddr
}

func validateDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d >= 0
}

func validatePackageName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name == "" || (packageNameRegex.MatchString(name) && !strings.Contains(name, ".."))
}

func validateEnvKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	return key != "" && !strings.ContainsAny(key, "= \t\n")
}
