package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"paramshell/internal/logger"
	"paramshell/internal/requirements"
	"paramshell/internal/version"
)

// ConfigurationServiceName is the registry name of the configuration service.
const ConfigurationServiceName = "configuration"

// EnvPrefix prefixes every environment variable paramshell reads.
const EnvPrefix = "PARAMSHELL"

// Configuration keys. Each is also readable as PARAMSHELL_<KEY> with dashes
// turned into underscores.
const (
	KeyDevMode        = "dev-mode"
	KeyLogLevel       = "log-level"
	KeyLogFile        = "log-file"
	KeyTestMode       = "test-mode"
	KeyClientVersion  = "client-version"
	KeyOrigin         = "origin"
	KeyAllowedActions = "allowed-actions"
	KeySchemeFiles    = "scheme-files"
	KeyTheme          = "theme"
	KeyOutput         = "output"
)

// Settings is the resolved configuration.
type Settings struct {
	DevMode        bool
	LogLevel       string
	LogFile        string
	TestMode       bool
	ClientVersion  string
	Origin         string
	AllowedActions []string
	SchemeFiles    []string
	Theme          string
	Output         string
}

// ConfigurationService resolves settings from, highest first: bound flags,
// PARAMSHELL_* environment variables, paramshell.yaml, .env files and defaults.
// .env files and the config file are skipped in test mode.
type ConfigurationService struct {
	v           *viper.Viper
	initialized bool
	configDir   string
	workDir     string
	envFiles    []string
}

// NewConfigurationService creates a configuration service over v. Passing nil
// uses the global viper instance, which is where cobra flags are bound.
func NewConfigurationService(v *viper.Viper) *ConfigurationService {
	if v == nil {
		v = viper.GetViper()
	}
	return &ConfigurationService{v: v}
}

// WithDirectories overrides the user config directory and the working directory.
func (c *ConfigurationService) WithDirectories(configDir, workDir string) *ConfigurationService {
	c.configDir = configDir
	c.workDir = workDir
	return c
}

// Name returns the service name.
func (c *ConfigurationService) Name() string {
	return ConfigurationServiceName
}

// Initialize loads every configuration source.
func (c *ConfigurationService) Initialize() error {
	if c.initialized {
		return nil
	}

	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.v.SetDefault(KeyClientVersion, version.GetBaseVersion())
	c.v.SetDefault(KeyTheme, "default")
	c.v.SetDefault(KeyOutput, "auto")

	if err := c.resolveDirectories(); err != nil {
		return err
	}

	if !c.v.GetBool(KeyTestMode) {
		if err := c.loadDotEnvFiles(); err != nil {
			return err
		}
		if err := c.readConfigFile(); err != nil {
			return err
		}
	}

	c.initialized = true
	logger.Debug("Configuration loaded", "configFile", c.v.ConfigFileUsed(), "envFiles", c.envFiles)
	return nil
}

func (c *ConfigurationService) resolveDirectories() error {
	if c.configDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.configDir = filepath.Join(dir, "paramshell")
		}
	}
	if c.workDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.workDir = dir
	}
	return nil
}

// loadDotEnvFiles reads PARAMSHELL_* entries from the working directory .env
// and then the config directory .env. The first file to set a key wins, and
// values only act as defaults so real environment variables still override them.
func (c *ConfigurationService) loadDotEnvFiles() error {
	seen := make(map[string]bool)
	for _, dir := range []string{c.workDir, c.configDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}

		values, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to parse .env file %s: %w", path, err)
		}
		c.envFiles = append(c.envFiles, path)

		for name, value := range values {
			key, ok := keyFromEnv(name)
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			c.v.SetDefault(key, value)
		}
	}
	return nil
}

func (c *ConfigurationService) readConfigFile() error {
	c.v.SetConfigName("paramshell")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(c.workDir)
	if c.configDir != "" {
		c.v.AddConfigPath(c.configDir)
	}

	err := c.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func keyFromEnv(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, EnvPrefix+"_")
	if !ok || rest == "" {
		return "", false
	}
	return strings.ReplaceAll(strings.ToLower(rest), "_", "-"), true
}

// Settings returns the resolved configuration.
func (c *ConfigurationService) Settings() (Settings, error) {
	if !c.initialized {
		return Settings{}, fmt.Errorf("configuration service not initialized")
	}
	return Settings{
		DevMode:        c.v.GetBool(KeyDevMode),
		LogLevel:       c.v.GetString(KeyLogLevel),
		LogFile:        c.v.GetString(KeyLogFile),
		TestMode:       c.v.GetBool(KeyTestMode),
		ClientVersion:  c.v.GetString(KeyClientVersion),
		Origin:         c.v.GetString(KeyOrigin),
		AllowedActions: stringList(c.v.Get(KeyAllowedActions)),
		SchemeFiles:    stringList(c.v.Get(KeySchemeFiles)),
		Theme:          c.v.GetString(KeyTheme),
		Output:         c.v.GetString(KeyOutput),
	}, nil
}

// Environment returns the requirement environment described by the settings.
func (c *ConfigurationService) Environment() (requirements.StaticEnvironment, error) {
	settings, err := c.Settings()
	if err != nil {
		return requirements.StaticEnvironment{}, err
	}
	return requirements.StaticEnvironment{
		Version: settings.ClientVersion,
		Request: settings.Origin,
		Actions: requirements.NewActionSet(settings.AllowedActions...),
	}, nil
}

// GetConfigValue returns a value as a string; missing keys give "".
func (c *ConfigurationService) GetConfigValue(key string) (string, error) {
	if !c.initialized {
		return "", fmt.Errorf("configuration service not initialized")
	}
	return c.v.GetString(key), nil
}

// SetConfigValue overrides a value for the rest of the process.
func (c *ConfigurationService) SetConfigValue(key string, value any) error {
	if !c.initialized {
		return fmt.Errorf("configuration service not initialized")
	}
	c.v.Set(key, value)
	return nil
}

// ConfigFileUsed returns the config file that was read, if any.
func (c *ConfigurationService) ConfigFileUsed() string {
	return c.v.ConfigFileUsed()
}

// EnvFilesLoaded lists the .env files that were read.
func (c *ConfigurationService) EnvFilesLoaded() []string {
	return append([]string(nil), c.envFiles...)
}

// stringList accepts a YAML list or a comma separated string.
func stringList(value any) []string {
	var raw []string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = []string{fmt.Sprint(v)}
	}

	var list []string
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
