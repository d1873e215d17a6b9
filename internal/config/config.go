package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ynab-import/ynab-import/internal/ynab"
)

// DefaultFileName is written by `init` and read when --config is not given.
const DefaultFileName = "ynab-import.yaml"

// Config represents the ynab-import.yaml configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	BudgetID   string           `yaml:"budget_id"`
	AccountID  string           `yaml:"account_id"`
	Categories CategoriesConfig `yaml:"categories"`
	Import     ImportConfig     `yaml:"import"`
}

// APIConfig locates the budgeting service.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CategoriesConfig picks the default category by amount sign.
type CategoriesConfig struct {
	Income   string `yaml:"income"`
	Fallback string `yaml:"fallback"` // empty = leave outflows uncategorized
}

// ImportConfig controls how each transaction is stamped.
type ImportConfig struct {
	FlagColor string `yaml:"flag_color"`
	ImportIDs bool   `yaml:"import_ids"`
}

// FlagColors lists the flag colors the service accepts.
var FlagColors = []string{"red", "orange", "yellow", "green", "blue", "purple"}

// Load reads a ynab-import.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path when it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for the budget this tool was written against.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: ynab.DefaultBaseURL,
		},
		BudgetID:  "18b695c6-09e7-4fe2-8f59-8a8b6976f375",
		AccountID: "bc363f3a-a2a2-4bc6-8372-596b881fd25b",
		Categories: CategoriesConfig{
			Income:   "62e38839-ff0f-4812-a253-aef130da1691",
			Fallback: "1b6e07cf-5e09-4acf-9fbe-e5d43a74e815",
		},
		Import: ImportConfig{
			FlagColor: "blue",
		},
	}
}

// ValidationError describes one invalid setting.
type ValidationError struct {
	Key    string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, ValidationError{Key: "api.base_url", Reason: fmt.Sprintf("%q is not an http(s) URL", c.API.BaseURL)})
	}

	ids := []struct {
		key      string
		value    string
		optional bool
	}{
		{"budget_id", c.BudgetID, false},
		{"account_id", c.AccountID, false},
		{"categories.income", c.Categories.Income, false},
		{"categories.fallback", c.Categories.Fallback, true},
	}
	for _, id := range ids {
		if id.value == "" {
			if !id.optional {
				errs = append(errs, ValidationError{Key: id.key, Reason: "required"})
			}
			continue
		}
		if _, err := uuid.Parse(id.value); err != nil {
			errs = append(errs, ValidationError{Key: id.key, Reason: fmt.Sprintf("%q is not a UUID", id.value)})
		}
	}

	if !validFlagColor(c.Import.FlagColor) {
		errs = append(errs, ValidationError{
			Key:    "import.flag_color",
			Reason: fmt.Sprintf("%q is not one of %s", c.Import.FlagColor, strings.Join(FlagColors, ", ")),
		})
	}

	return errors.Join(errs...)
}

func validFlagColor(color string) bool {
	if color == "" {
		return true
	}
	for _, c := range FlagColors {
		if c == color {
			return true
		}
	}
	return false
}
