package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// EnvPrefix é o prefixo das variáveis de ambiente (KPI_DATASET, KPI_LOGGING_LEVEL...).
const EnvPrefix = "KPI"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	v := validator.New()
	// mensagens com os nomes usados no arquivo
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ConfigRepositoryImpl{validate: v}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

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

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// Load parte dos datasets embutidos, aplica o arquivo (se houver) e depois o ambiente.
func (r *ConfigRepositoryImpl) Load(filePath string) (*types.Config, error) {
	cfg := types.DefaultConfig()

	if filePath != "" {
		fileCfg, err := r.LoadConfigFile(filePath)
		if err != nil {
			return nil, err
		}
		merge(cfg, fileCfg)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := r.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the struct tags plus the rules tags cannot express.
func (r *ConfigRepositoryImpl) Validate(cfg *types.Config) error {
	if err := r.validate.Struct(cfg); err != nil {
		return err
	}

	seen := make(map[string]bool, len(cfg.Datasets))
	for _, d := range cfg.Datasets {
		if seen[d.Name] {
			return fmt.Errorf("dataset %q declared twice", d.Name)
		}
		seen[d.Name] = true
		if err := validateDataset(d); err != nil {
			return fmt.Errorf("dataset %q: %w", d.Name, err)
		}
	}

	if _, ok := cfg.FindDataset(cfg.Dataset); cfg.Dataset != "" && !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownDataset, cfg.Dataset)
	}
	return nil
}

func validateDataset(d types.DatasetConfig) error {
	known := func(col entity.LogicalColumn) bool {
		_, ok := d.Columns.Spec(col)
		return ok
	}

	dims := make(map[string]bool, len(d.Dimensions))
	for _, dim := range d.Dimensions {
		if dims[dim.Name] {
			return fmt.Errorf("dimension %q declared twice", dim.Name)
		}
		dims[dim.Name] = true
		if !dim.Time && !known(dim.Column) {
			return fmt.Errorf("dimension %q uses undeclared column %q", dim.Name, dim.Column)
		}
	}

	for _, group := range [][]types.MeasureConfig{d.Measures, d.Flags, d.Motives} {
		for _, m := range group {
			if !known(m.Column) {
				return fmt.Errorf("measure uses undeclared column %q", m.Column)
			}
		}
	}

	// deltas só existem no cumprimento, e a polaridade nunca é inferida
	if d.Kind == entity.KindCompliance {
		for _, m := range d.Measures {
			if _, ok := d.Polarities[string(m.Column)]; !ok {
				return fmt.Errorf("measure %q has no polarity rule", m.Column)
			}
		}
	}
	return nil
}

// merge aplica os valores do arquivo sobre a configuração padrão.
// Um dataset com o mesmo nome substitui o embutido; os demais são acrescentados.
func merge(dst, src *types.Config) {
	if src.Dataset != "" {
		dst.Dataset = src.Dataset
	}
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.Output != "" {
		dst.Logging.Output = src.Logging.Output
	}
	if src.Source.BaseDir != "" {
		dst.Source.BaseDir = src.Source.BaseDir
	}
	if src.Source.TimeoutSeconds != 0 {
		dst.Source.TimeoutSeconds = src.Source.TimeoutSeconds
	}
	if src.Source.AWSProfile != "" {
		dst.Source.AWSProfile = src.Source.AWSProfile
	}
	if src.Source.AWSRegion != "" {
		dst.Source.AWSRegion = src.Source.AWSRegion
	}

	for _, d := range src.Datasets {
		replaced := false
		for i := range dst.Datasets {
			if dst.Datasets[i].Name == d.Name {
				dst.Datasets[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			dst.Datasets = append(dst.Datasets, d)
		}
	}
}
