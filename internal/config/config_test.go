package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/character-builder/internal/config"
	"github.com/KirkDiggler/character-builder/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeFile(name, body string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Equal(50051, cfg.Server.Port)
	s.Equal(30*time.Second, cfg.Server.ShutdownTimeout)
	s.Equal("localhost:6379", cfg.Redis.Addr)
	s.Equal("info", cfg.Logging.Level)
	s.Equal(config.CompendiumStatic, cfg.Compendium.Source)
	s.Equal(24*time.Hour, cfg.Drafts.TTL)
	s.Equal(8, cfg.Rules.ManualMinScore)
}

func (s *ConfigTestSuite) TestFileAndEnvOverrides() {
	path := s.writeFile("config.yaml", `
server:
  port: 6000
logging:
  level: debug
  format: console
compendium:
  source: api
  http_timeout: 5s
drafts:
  ttl: 2h
`)
	s.T().Setenv("CHARBUILDER_REDIS_ADDR", "redis:6380")
	s.T().Setenv("CHARBUILDER_RULES_MANUAL_MIN_SCORE", "3")

	cfg, err := config.Load(path)
	s.Require().NoError(err)

	s.Equal(6000, cfg.Server.Port)
	s.Equal("debug", cfg.Logging.Level)
	s.Equal("console", cfg.Logging.Format)
	s.Equal(config.CompendiumAPI, cfg.Compendium.Source)
	s.Equal(5*time.Second, cfg.Compendium.HTTPTimeout)
	s.Equal(2*time.Hour, cfg.Drafts.TTL)
	s.Equal("redis:6380", cfg.Redis.Addr)
	s.Equal(3, cfg.Rules.ManualMinScore)
}

func (s *ConfigTestSuite) TestValidationCollectsEveryField() {
	path := s.writeFile("bad.yaml", `
server:
  port: 0
logging:
  level: loud
  format: xml
compendium:
  source: carrier-pigeon
rules:
  manual_min_score: 1
`)
	_, err := config.Load(path)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	for _, key := range []string{"server.port", "logging.level", "logging.format", "compendium.source", "rules.manual_min_score"} {
		s.Contains(fields, key)
	}
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := config.Load(filepath.Join(s.dir, "nope.yaml"))
	s.Error(err)
}

func (s *ConfigTestSuite) TestLoadDotEnv() {
	path := s.writeFile(".env", "CHARBUILDER_TEST_DOTENV_MARKER=present\n")
	s.T().Setenv("CHARBUILDER_TEST_DOTENV_MARKER", "")
	s.Require().NoError(os.Unsetenv("CHARBUILDER_TEST_DOTENV_MARKER"))

	config.LoadDotEnv(path, filepath.Join(s.dir, "missing.env"))
	s.Equal("present", os.Getenv("CHARBUILDER_TEST_DOTENV_MARKER"))
}
