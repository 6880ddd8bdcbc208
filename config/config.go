package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed pixy.toml
var defaultConfigData []byte

// Defaults for fields omitted from a camera profile
const (
	DefaultAddress     = 0x54
	DefaultBaud        = 19200
	DefaultReadTimeout = 100 * time.Millisecond
	DefaultRetryBudget = 500 * time.Millisecond
	DefaultRetryDelay  = 500 * time.Microsecond
)

// Global state variables for the selected camera
var (
	FilePath    string // config file actually loaded
	CameraName  string
	Protocol    string // "pixy2" or "lego"
	Link        string // "i2c" or "serial"
	Port        string
	Baud        int
	Address     byte
	ReadTimeout time.Duration
	RetryBudget time.Duration
	RetryDelay  time.Duration
)

// Config represents the entire TOML configuration structure
type Config struct {
	Default string   `toml:"default"`
	Camera  []Camera `toml:"camera"`
}

// Camera represents one camera profile
type Camera struct {
	Name        string `toml:"name"`
	Protocol    string `toml:"protocol"`
	Link        string `toml:"link"`
	Port        string `toml:"port"`
	Baud        int    `toml:"baud"`
	Address     int    `toml:"address"`
	ReadTimeout string `toml:"read_timeout"`
	RetryBudget string `toml:"retry_budget"`
	RetryDelay  string `toml:"retry_delay"`
}

// Settings are the validated values of a camera profile
type Settings struct {
	Name        string
	Protocol    string
	Link        string
	Port        string
	Baud        int
	Address     byte
	ReadTimeout time.Duration
	RetryBudget time.Duration
	RetryDelay  time.Duration
}

// DefaultPath determines the config file path based on the operating system
func DefaultPath() (string, error) {
	var configDir string
	var err error

	switch runtime.GOOS {
	case "windows":
		// Use AppData directory for Windows
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "pixy")
	default:
		// Linux/macOS: use home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
	}

	return filepath.Join(configDir, ".pixy"), nil
}

// Load parses the config file at path.
// If the file doesn't exist, it is created from the embedded default.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create parent directory if needed (for Windows)
		configDir := filepath.Dir(path)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory %s: %w", configDir, err)
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return nil, fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config at %s: %w", path, err)
	}
	return &conf, nil
}

// Select finds and validates the named camera profile.
// An empty name selects the `default` key.
func (conf *Config) Select(name string) (Settings, error) {
	if name == "" {
		name = conf.Default
	}
	if name == "" {
		return Settings{}, errors.New("`default` key is missing or empty in config")
	}

	for i := range conf.Camera {
		if conf.Camera[i].Name == name {
			return conf.Camera[i].settings()
		}
	}
	return Settings{}, fmt.Errorf("camera %q not found in camera array", name)
}

// settings validates the profile and fills in defaults
func (c *Camera) settings() (Settings, error) {
	s := Settings{
		Name:        c.Name,
		Protocol:    c.Protocol,
		Link:        c.Link,
		Port:        c.Port,
		Baud:        c.Baud,
		Address:     DefaultAddress,
		ReadTimeout: DefaultReadTimeout,
		RetryBudget: DefaultRetryBudget,
		RetryDelay:  DefaultRetryDelay,
	}

	switch c.Protocol {
	case "pixy2", "lego":
	default:
		return s, fmt.Errorf("camera %q has invalid protocol: %q (must be \"pixy2\" or \"lego\")", c.Name, c.Protocol)
	}

	switch c.Link {
	case "i2c":
	case "serial":
		if c.Port == "" {
			return s, fmt.Errorf("camera %q has no port for serial link", c.Name)
		}
		if c.Protocol == "lego" {
			return s, fmt.Errorf("camera %q: lego protocol needs the i2c link", c.Name)
		}
	default:
		return s, fmt.Errorf("camera %q has invalid link: %q (must be \"i2c\" or \"serial\")", c.Name, c.Link)
	}

	if c.Baud < 0 {
		return s, fmt.Errorf("camera %q has invalid baud: %d (must be positive)", c.Name, c.Baud)
	}
	if c.Baud == 0 {
		s.Baud = DefaultBaud
	}

	if c.Address != 0 {
		if c.Address < 0 || c.Address > 0x7f {
			return s, fmt.Errorf("camera %q has invalid address: 0x%x (must be 7-bit)", c.Name, c.Address)
		}
		s.Address = byte(c.Address)
	}

	for _, d := range []struct {
		field string
		text  string
		dst   *time.Duration
	}{
		{"read_timeout", c.ReadTimeout, &s.ReadTimeout},
		{"retry_budget", c.RetryBudget, &s.RetryBudget},
		{"retry_delay", c.RetryDelay, &s.RetryDelay},
	} {
		if d.text == "" {
			continue
		}
		v, err := time.ParseDuration(d.text)
		if err != nil {
			return s, fmt.Errorf("camera %q has invalid %s: %w", c.Name, d.field, err)
		}
		if v <= 0 {
			return s, fmt.Errorf("camera %q has invalid %s: %s (must be positive)", c.Name, d.field, d.text)
		}
		*d.dst = v
	}
	return s, nil
}

// Initialize loads the configuration file and selects a camera profile.
// An empty path means DefaultPath, an empty camera means the `default` key.
func Initialize(path, camera string) error {
	var err error
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	conf, err := Load(path)
	if err != nil {
		return err
	}
	s, err := conf.Select(camera)
	if err != nil {
		return err
	}

	// Store camera properties in global variables
	FilePath = path
	CameraName = s.Name
	Protocol = s.Protocol
	Link = s.Link
	Port = s.Port
	Baud = s.Baud
	Address = s.Address
	ReadTimeout = s.ReadTimeout
	RetryBudget = s.RetryBudget
	RetryDelay = s.RetryDelay
	return nil
}
