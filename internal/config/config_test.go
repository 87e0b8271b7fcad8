package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL:          "postgres://localhost:5432/teammatch",
		QuestionnaireSheetID: "sheet123",
		QuestionnaireTab:     "Form responses 1",
		TeamsSheetID:         "teams456",
		GmailUserID:          "me",
	}
}

func TestValidate_MinimalConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_FullConfig(t *testing.T) {
	threshold := 65.0
	margin := 5.0
	limit := 12
	cfg := validConfig()
	cfg.GmailSender = "events@example.com"
	cfg.NotifyConcurrency = 4
	cfg.MatchingRounds = "FREQ=WEEKLY;BYDAY=MO"
	cfg.Matching = MatchingConfig{
		MinTeamSize:            3,
		MaxTeamSize:            5,
		CompatibilityThreshold: &threshold,
		MaxIterations:          10,
		PhaseMargin:            &margin,
		ExhaustiveSearchLimit:  &limit,
		Weights:                &Weights{Skills: 1, Availability: 1},
	}
	cfg.Audit = AuditConfig{Capacity: 50, Retention: time.Hour}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_Errors(t *testing.T) {
	tooHigh := 120.0
	negative := -1

	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		contains string
	}{
		{"missing database url", func(cfg *Config) { cfg.DatabaseURL = "" }, "validation failed"},
		{"missing questionnaire tab", func(cfg *Config) { cfg.QuestionnaireTab = "" }, "validation failed"},
		{"team size below two", func(cfg *Config) { cfg.Matching.MinTeamSize = 1 }, "validation failed"},
		{"max below min", func(cfg *Config) {
			cfg.Matching.MinTeamSize = 4
			cfg.Matching.MaxTeamSize = 3
		}, "validation failed"},
		{"min above default max", func(cfg *Config) { cfg.Matching.MinTeamSize = 5 }, "team sizes must satisfy"},
		{"max above bound", func(cfg *Config) { cfg.Matching.MaxTeamSize = 9 }, "validation failed"},
		{"threshold above 100", func(cfg *Config) { cfg.Matching.CompatibilityThreshold = &tooHigh }, "validation failed"},
		{"negative potential matches", func(cfg *Config) { cfg.Matching.MaxPotentialMatches = &negative }, "validation failed"},
		{"negative weight", func(cfg *Config) { cfg.Matching.Weights = &Weights{Skills: -1, Availability: 2} }, "validation failed"},
		{"all weights zero", func(cfg *Config) { cfg.Matching.Weights = &Weights{} }, "weights must not all be zero"},
		{"notify concurrency too high", func(cfg *Config) { cfg.NotifyConcurrency = 50 }, "validation failed"},
		{"negative retention", func(cfg *Config) { cfg.Audit.Retention = -time.Minute }, "validation failed"},
		{"invalid rrule", func(cfg *Config) { cfg.MatchingRounds = "INVALID_RRULE_SYNTAX" }, "invalid rrule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestMatchingConfig_TeamSizes(t *testing.T) {
	minSize, maxSize := MatchingConfig{}.TeamSizes()
	assert.Equal(t, 2, minSize)
	assert.Equal(t, 4, maxSize)

	minSize, maxSize = MatchingConfig{MinTeamSize: 3}.TeamSizes()
	assert.Equal(t, 3, minSize)
	assert.Equal(t, 4, maxSize)

	minSize, maxSize = MatchingConfig{MaxTeamSize: 6}.TeamSizes()
	assert.Equal(t, 2, minSize)
	assert.Equal(t, 6, maxSize)
}

func TestLoadFromPath_MinTeamSizeAboveDefaultMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teammatch_config.yaml")
	content := `databaseURL: postgres://localhost:5432/teammatch
questionnaireSheetID: sheet123
questionnaireTab: Form responses 1
teamsSheetID: teams456
gmailUserID: me
matching:
  minTeamSize: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "got 5 and 4")
}

func TestValidate_ComplexValidRRule(t *testing.T) {
	cfg := validConfig()
	cfg.MatchingRounds = "FREQ=MONTHLY;BYDAY=1MO;BYMONTH=2,3,7,8"

	assert.NoError(t, Validate(cfg))
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "teammatch_config.yaml")

	content := `
databaseURL: "postgres://localhost:5432/teammatch"
questionnaireSheetID: "sheet123"
questionnaireTab: "Form responses 1"
teamsSheetID: "teams456"
gmailUserID: "me"
gmailSender: "events@example.com"
matchingRounds: "FREQ=WEEKLY;BYDAY=MO"
matching:
  minTeamSize: 2
  maxTeamSize: 5
  compatibilityThreshold: 65
  phaseMargin: 0
  weights:
    skills: 40
    availability: 20
    caseTypes: 15
    institution: 5
    experience: 20
audit:
  capacity: 200
  retention: 72h
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/teammatch", cfg.DatabaseURL)
	assert.Equal(t, "sheet123", cfg.QuestionnaireSheetID)
	assert.Equal(t, "Form responses 1", cfg.QuestionnaireTab)
	assert.Equal(t, "teams456", cfg.TeamsSheetID)
	assert.Equal(t, "events@example.com", cfg.GmailSender)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", cfg.MatchingRounds)

	assert.Equal(t, 2, cfg.Matching.MinTeamSize)
	assert.Equal(t, 5, cfg.Matching.MaxTeamSize)
	require.NotNil(t, cfg.Matching.CompatibilityThreshold)
	assert.Equal(t, 65.0, *cfg.Matching.CompatibilityThreshold)
	require.NotNil(t, cfg.Matching.PhaseMargin, "An explicit zero margin is kept")
	assert.Equal(t, 0.0, *cfg.Matching.PhaseMargin)
	assert.Nil(t, cfg.Matching.MaxPotentialMatches)
	require.NotNil(t, cfg.Matching.Weights)
	assert.Equal(t, 100.0, cfg.Matching.Weights.Total())

	assert.Equal(t, 200, cfg.Audit.Capacity)
	assert.Equal(t, 72*time.Hour, cfg.Audit.Retention)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	content := `
databaseURL: "postgres://localhost:5432/teammatch"
questionnaireSheetID: "sheet123"
questionnaireTab: "Form responses 1"
teamsSheetID: "teams456"
gmailUserID: "me"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Empty(t, cfg.GmailSender)
	assert.Empty(t, cfg.MatchingRounds)
	assert.Equal(t, MatchingConfig{}, cfg.Matching)
	assert.Equal(t, AuditConfig{}, cfg.Audit)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	content := `
databaseURL: "postgres://localhost:5432/teammatch"
questionnaireSheetID: "sheet123"
questionnaireTab: "Form responses 1"
teamsSheetID: "teams456"
gmailUserID: "me"
matchingRounds: "INVALID_RRULE_SYNTAX"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	content := `
questionnaireSheetID: "sheet123"
questionnaireTab: "Form responses 1"
teamsSheetID: "teams456"
# Missing databaseURL
gmailUserID: "me"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	content := `
databaseURL: "postgres://localhost"
  invalid indentation
teamsSheetID: "teams456"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFindConfigFile_PrefersEnvironmentFile(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.WriteFile("teammatch_config.yaml", []byte("{}"), 0644))

	path, err := findConfigFile("test")
	require.NoError(t, err)
	assert.Equal(t, "teammatch_config.yaml", path, "Falls back to the plain file")

	require.NoError(t, os.WriteFile("teammatch_config.test.yaml", []byte("{}"), 0644))

	path, err = findConfigFile("test")
	require.NoError(t, err)
	assert.Equal(t, "teammatch_config.test.yaml", path)
}

func TestFindConfigFile_FallsBackToHome(t *testing.T) {
	t.Chdir(t.TempDir())
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	_, err := findConfigFile("prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	homeConfig := filepath.Join(homeDir, "teammatch_config.prod.yaml")
	require.NoError(t, os.WriteFile(homeConfig, []byte("{}"), 0644))

	path, err := findConfigFile("prod")
	require.NoError(t, err)
	assert.Equal(t, homeConfig, path)
}
