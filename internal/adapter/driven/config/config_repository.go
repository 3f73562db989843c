package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-which-region/internal/domain/repository"
	"github.com/diillson/aws-which-region/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// decoder traduz o conteúdo bruto do arquivo para types.Config.
type decoder struct {
	format    string
	unmarshal func([]byte, interface{}) error
}

// decoders indexa os formatos suportados pela extensão do arquivo.
var decoders = map[string]decoder{
	".toml": {format: "TOML", unmarshal: toml.Unmarshal},
	".yaml": {format: "YAML", unmarshal: yaml.Unmarshal},
	".yml":  {format: "YAML", unmarshal: yaml.Unmarshal},
	".json": {format: "JSON", unmarshal: json.Unmarshal},
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega e valida um arquivo de configuração TOML, YAML ou JSON.
// A extensão é verificada antes de qualquer acesso ao disco.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	extension := strings.ToLower(filepath.Ext(filePath))
	dec, ok := decoders[extension]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedConfig, extension)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config
	if err := dec.unmarshal(fileData, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", dec.format, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// validate rejeita valores que o CLI recusaria mais tarde, para que o erro
// aponte para o arquivo e não para a flag.
func validate(cfg *types.Config) error {
	if cfg.Timeout != nil && *cfg.Timeout != "" {
		d, err := time.ParseDuration(*cfg.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must not be negative: %s", *cfg.Timeout)
		}
	}
	if cfg.Verbose != nil && *cfg.Verbose < 0 {
		return fmt.Errorf("verbose must not be negative: %d", *cfg.Verbose)
	}
	if cfg.EndpointURL != nil && *cfg.EndpointURL != "" {
		u, err := url.Parse(*cfg.EndpointURL)
		if err != nil {
			return fmt.Errorf("endpoint_url: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("endpoint_url must be an absolute http(s) URL: %q", *cfg.EndpointURL)
		}
	}
	return nil
}
