// Package config supplies the connection parameters for the service under
// test. Configuration is loaded once per process from a YAML settings file and
// is immutable afterward.
package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile is the environment variable that can point at a settings file.
const EnvConfigFile = "REPO_SMOKE_CONFIG"

const defaultConfigFile = "repo-smoke.yaml"
const defaultTimeout = time.Second * 30

// Config holds the parameters for talking to the server under test. The zero
// value is not usable; obtain one from Load or Get.
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	VerifySSL bool
	Timeout   time.Duration
}

type fileConfig struct {
	BaseURL string `yaml:"base_url"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
	VerifySSL *bool  `yaml:"verify_ssl"`
	Timeout   string `yaml:"timeout"`
}

var (
	loadOnce   sync.Once
	loadedCfg  Config
	loadedErr  error
)

// Load reads and validates a settings file at the given path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read settings file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML settings data.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("malformed settings file: %w", err)
	}

	cfg := Config{
		BaseURL:   strings.TrimSuffix(fc.BaseURL, "/"),
		Username:  fc.Auth.Username,
		Password:  fc.Auth.Password,
		VerifySSL: true,
		Timeout:   defaultTimeout,
	}
	if fc.VerifySSL != nil {
		cfg.VerifySSL = *fc.VerifySSL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout in settings file: %w", err)
		}
		cfg.Timeout = d
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Get returns the process-wide configuration, locating the settings file from
// the REPO_SMOKE_CONFIG environment variable or the default file name in the
// working directory. The result is computed once; later calls return the same
// value. An error means no usable configuration source was found, which is
// fatal for a test run.
func Get() (Config, error) {
	loadOnce.Do(func() {
		path := os.Getenv(EnvConfigFile)
		if path == "" {
			path = defaultConfigFile
		}
		if _, err := os.Stat(path); err != nil {
			loadedErr = fmt.Errorf("no configuration source found (set %s or create %s): %w",
				EnvConfigFile, defaultConfigFile, err)
			return
		}
		loadedCfg, loadedErr = Load(path)
	})
	return loadedCfg, loadedErr
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("settings file does not specify base_url")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	return nil
}

// HTTPClient returns an HTTP client honoring the TLS verification and timeout
// settings. This is the single place where transport options are decided, so
// callers never hardcode them.
func (c Config) HTTPClient() *http.Client {
	client := &http.Client{Timeout: c.Timeout}
	if !c.VerifySSL {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opted in via verify_ssl: false
		}
	}
	return client
}

// Endpoint joins an API path onto the base URL.
func (c Config) Endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}
