package config

import "testing"

func TestEffectiveSSLMode(t *testing.T) {
	tests := []struct {
		name    string
		sslMode string
		env     string
		want    string
	}{
		{"prod validates certificates", "", EnvProd, SSLModeVerifyFull},
		{"dev encrypts without validation", "", EnvDev, SSLModeRequire},
		{"local encrypts without validation", "", EnvLocal, SSLModeRequire},
		{"explicit mode wins in prod", SSLModeDisable, EnvProd, SSLModeDisable},
		{"explicit mode wins locally", SSLModeVerifyFull, EnvLocal, SSLModeVerifyFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := PostgresConfig{SSLMode: tt.sslMode}
			if got := cfg.EffectiveSSLMode(tt.env); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: "https://a.example, https://b.example ,https://c.example"}
	origins := cfg.Origins()
	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if len(origins) != len(want) {
		t.Fatalf("expected %d origins, got %d", len(want), len(origins))
	}
	for i := range want {
		if origins[i] != want[i] {
			t.Errorf("origin %d: expected %q, got %q", i, want[i], origins[i])
		}
	}
}
