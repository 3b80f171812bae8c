package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Channel creation policies.
const (
	ChannelCreationAnyone = "anyone"
	ChannelCreationAdmin  = "admin"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Gateway   GatewayConfig     `yaml:"gateway"`
	Blob      BlobConfig        `yaml:"blob"`
	Auth      AuthConfig        `yaml:"auth"`
	Community CommunityConfig   `yaml:"community"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Gateway.Validate(); err != nil {
		return err
	}
	if err := c.Blob.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Community.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// GatewayConfig holds the persistence gateway's SQLite database path.
type GatewayConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the gateway configuration.
func (c *GatewayConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// BlobConfig holds the file storage directory and the base URL under
// which stored files are served.
type BlobConfig struct {
	Root          string `yaml:"root"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// Validate validates the blob storage configuration.
func (c *BlobConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
	)
}

// AuthConfig optionally seeds an admin account at startup. Sessions are
// otherwise provisioned by the external auth system; the application only
// resolves bearer tokens.
type AuthConfig struct {
	BootstrapAdminEmail string `yaml:"bootstrap_admin_email"`
	BootstrapAdminToken string `yaml:"bootstrap_admin_token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if (c.BootstrapAdminEmail == "") != (c.BootstrapAdminToken == "") {
		return fmt.Errorf("auth: bootstrap_admin_email and bootstrap_admin_token must be set together")
	}
	return nil
}

// BootstrapEnabled returns true when an admin account should be seeded.
func (c *AuthConfig) BootstrapEnabled() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminToken != ""
}

// CommunityConfig holds community behavior switches.
//
// ChannelCreation controls who may create channels:
//   - "anyone" (default): any authenticated user.
//   - "admin": admins only.
type CommunityConfig struct {
	ChannelCreation string `yaml:"channel_creation"`
}

// Validate validates the community configuration.
func (c *CommunityConfig) Validate() error {
	// Normalise empty policy to "anyone".
	if c.ChannelCreation == "" {
		c.ChannelCreation = ChannelCreationAnyone
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.ChannelCreation, validation.Required, validation.In(ChannelCreationAnyone, ChannelCreationAdmin)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Gateway: GatewayConfig{
			Path: "./malezi.db",
		},
		Blob: BlobConfig{
			Root:          "./storage",
			PublicBaseURL: "http://localhost:8080",
		},
		Community: CommunityConfig{
			ChannelCreation: ChannelCreationAnyone,
		},
	}
}
