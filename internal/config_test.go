package internal

import (
	"strings"
	"testing"
)

func TestCommunityConfig_EmptyPolicyDefaultsAnyone(t *testing.T) {
	cfg := CommunityConfig{ChannelCreation: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty policy should default to anyone: %v", err)
	}
	if cfg.ChannelCreation != ChannelCreationAnyone {
		t.Errorf("policy = %q, want %q", cfg.ChannelCreation, ChannelCreationAnyone)
	}
}

func TestCommunityConfig_InvalidPolicy(t *testing.T) {
	cfg := CommunityConfig{ChannelCreation: "moderators"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid policy should fail validation")
	}
}

func TestAuthConfig_BootstrapRequiresBothFields(t *testing.T) {
	cfg := AuthConfig{BootstrapAdminEmail: "admin@example.com"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("email without token should fail")
	}
	if !strings.Contains(err.Error(), "set together") {
		t.Errorf("unexpected error: %v", err)
	}

	cfg = AuthConfig{BootstrapAdminToken: "secret"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("token without email should fail")
	}
}

func TestAuthConfig_BootstrapEnabled(t *testing.T) {
	cfg := AuthConfig{}
	if cfg.BootstrapEnabled() {
		t.Error("empty auth config should not enable bootstrap")
	}

	cfg = AuthConfig{BootstrapAdminEmail: "admin@example.com", BootstrapAdminToken: "secret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("both fields set should pass: %v", err)
	}
	if !cfg.BootstrapEnabled() {
		t.Error("both fields set should enable bootstrap")
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
	cfg := HTTPConfig{Port: 8080}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid port should pass: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Errorf("address = %q, want :8080", cfg.Address())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
