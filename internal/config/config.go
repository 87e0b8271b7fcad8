package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/beyondcareer/teammatch/pkg/core/matcher"
)

// Largest team size the config accepts. Exhaustive search enumerates combinations of
// this many members, so the bound keeps that search tractable.
const maxConfigTeamSize = 8

// Weights sets the relative importance of each compatibility criterion
type Weights struct {
	Skills       float64 `yaml:"skills" validate:"gte=0"`
	Availability float64 `yaml:"availability" validate:"gte=0"`
	CaseTypes    float64 `yaml:"caseTypes" validate:"gte=0"`
	Institution  float64 `yaml:"institution" validate:"gte=0"`
	Experience   float64 `yaml:"experience" validate:"gte=0"`
}

// TeamSizes returns the team size range in effect, filling omitted bounds with the engine defaults
func (m MatchingConfig) TeamSizes() (minSize, maxSize int) {
	minSize, maxSize = matcher.DefaultMinTeamSize, matcher.DefaultMaxTeamSize
	if m.MinTeamSize > 0 {
		minSize = m.MinTeamSize
	}
	if m.MaxTeamSize > 0 {
		maxSize = m.MaxTeamSize
	}
	return minSize, maxSize
}

// Total returns the sum of all weights
func (w Weights) Total() float64 {
	return w.Skills + w.Availability + w.CaseTypes + w.Institution + w.Experience
}

// MatchingConfig tunes the matching engine. Omitted fields use the engine defaults.
type MatchingConfig struct {
	MinTeamSize            int      `yaml:"minTeamSize,omitempty" validate:"omitempty,min=2,max=8"`
	MaxTeamSize            int      `yaml:"maxTeamSize,omitempty" validate:"omitempty,min=2,max=8,gtefield=MinTeamSize"`
	CompatibilityThreshold *float64 `yaml:"compatibilityThreshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	// Greedy passes; the exhaustive pass runs once more after these
	MaxIterations          int      `yaml:"maxIterations,omitempty" validate:"omitempty,min=1"`
	PhaseMargin            *float64 `yaml:"phaseMargin,omitempty" validate:"omitempty,gte=0,lte=100"`
	MaxPotentialMatches    *int     `yaml:"maxPotentialMatches,omitempty" validate:"omitempty,min=0"`
	ExhaustiveSearchLimit  *int     `yaml:"exhaustiveSearchLimit,omitempty" validate:"omitempty,min=0,max=24"`
	Weights                *Weights `yaml:"weights,omitempty"`
}

// AuditConfig bounds the in-memory audit log
type AuditConfig struct {
	Capacity  int           `yaml:"capacity,omitempty" validate:"omitempty,min=1"`
	Retention time.Duration `yaml:"retention,omitempty" validate:"omitempty,gt=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL          string         `yaml:"databaseURL" validate:"required"`
	QuestionnaireSheetID string         `yaml:"questionnaireSheetID" validate:"required"`
	QuestionnaireTab     string         `yaml:"questionnaireTab" validate:"required"`
	QuestionnaireFormID  string         `yaml:"questionnaireFormID,omitempty"`
	TeamsSheetID         string         `yaml:"teamsSheetID" validate:"required"`
	GmailUserID          string         `yaml:"gmailUserID" validate:"required"`
	GmailSender          string         `yaml:"gmailSender,omitempty"`
	NotifyConcurrency    int            `yaml:"notifyConcurrency,omitempty" validate:"omitempty,min=1,max=10"`
	MatchingRounds       string         `yaml:"matchingRounds,omitempty"`
	Matching             MatchingConfig `yaml:"matching,omitempty"`
	Audit                AuditConfig    `yaml:"audit,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from teammatch_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" looks for "teammatch_config.test.yaml" before "teammatch_config.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the criterion weights and the rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if minSize, maxSize := cfg.Matching.TeamSizes(); minSize > maxSize || maxSize > maxConfigTeamSize {
		return fmt.Errorf("config validation failed: team sizes must satisfy %d <= minTeamSize <= maxTeamSize <= %d, got %d and %d",
			matcher.DefaultMinTeamSize, maxConfigTeamSize, minSize, maxSize)
	}

	if w := cfg.Matching.Weights; w != nil && w.Total() <= 0 {
		return fmt.Errorf("config validation failed: matching weights must not all be zero")
	}

	if cfg.MatchingRounds != "" {
		if _, err := rrule.StrToRRule(cfg.MatchingRounds); err != nil {
			return fmt.Errorf("invalid rrule in matchingRounds: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the environment specific config file, then the plain one
func findConfigFile(env string) (string, error) {
	names := []string{"teammatch_config.yaml"}
	if env != "" {
		names = append([]string{"teammatch_config." + env + ".yaml"}, names...)
	}

	path, err := findInSearchPath(names)
	if err != nil {
		return "", fmt.Errorf("config file: %w", err)
	}
	return path, nil
}

// findInSearchPath returns the first of names found in the current directory,
// then the first found in the user's home directory
func findInSearchPath(names []string) (string, error) {
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		homePath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homePath); err == nil {
			return homePath, nil
		}
	}

	return "", fmt.Errorf("not found in current directory or home directory")
}
