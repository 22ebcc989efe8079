package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyLogLevel         = "log_level"
	KeyTemplateDir      = "template_dir"
	KeyUserGuideBaseURL = "user_guide_base_url"
	KeyDefaultAuthor    = "default_author"
	KeyDeveloperDocURL  = "developer_doc_url"
	KeySourceURL        = "source_url"
)

// Keys lists every key accepted by "config set".
var Keys = []string{
	KeyLogLevel,
	KeyTemplateDir,
	KeyUserGuideBaseURL,
	KeyDefaultAuthor,
	KeyDeveloperDocURL,
	KeySourceURL,
}

// Dir returns the path to the config directory (~/.pkgtmpl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pkgtmpl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyTemplateDir, branding.TemplateDir())
	viper.SetDefault(KeyUserGuideBaseURL, "https://l.youwol.com/doc")
	viper.SetDefault(KeyDeveloperDocURL, "https://platform.youwol.com/applications/@youwol/cdn-explorer/latest?package={name}&tab=doc")
	viper.SetDefault(KeySourceURL, "https://github.com/youwol/{repo}")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// LogLevel returns the configured log level (trace, debug, info, warn, error).
func LogLevel() string { return Get(KeyLogLevel) }

// TemplateDir returns the project-relative directory auxiliary files are
// copied from.
func TemplateDir() string { return Get(KeyTemplateDir) }

// UserGuideBaseURL returns the base URL user guide links are built from.
func UserGuideBaseURL() string { return Get(KeyUserGuideBaseURL) }

// DefaultAuthor returns the author used when neither the template nor the
// manifest names one.
func DefaultAuthor() string { return Get(KeyDefaultAuthor) }

// DeveloperDocURL returns the developer documentation link pattern. {name}
// expands to the package name and {repo} to the name without its scope.
func DeveloperDocURL() string { return Get(KeyDeveloperDocURL) }

// SourceURL returns the source repository link pattern, with the same
// placeholders as DeveloperDocURL.
func SourceURL() string { return Get(KeySourceURL) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
