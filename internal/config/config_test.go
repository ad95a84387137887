package config

import "testing"

func TestParseAPIKeys(t *testing.T) {
	t.Setenv("GOOGLE_API_KEYS", "k1, k2")
	keys := parseAPIKeys()
	if len(keys) != 2 || keys[0] != "k1" || keys[1] != "k2" {
		t.Fatalf("unexpected keys: %+v", keys)
	}

	t.Setenv("GOOGLE_API_KEYS", "")
	t.Setenv("GOOGLE_API_KEY", "single")
	keys = parseAPIKeys()
	if len(keys) != 1 || keys[0] != "single" {
		t.Fatalf("unexpected single key: %+v", keys)
	}
}

func TestSplitKeys(t *testing.T) {
	keys := splitKeys("a,b c\td\n")
	if len(keys) != 4 {
		t.Fatalf("unexpected keys length: %d", len(keys))
	}
}

func TestGeminiConfigPrimaryKey(t *testing.T) {
	cfg := GeminiConfig{APIKeys: []string{"key1", "key2"}}
	if cfg.PrimaryKey() != "key1" {
		t.Fatalf("expected 'key1', got: %s", cfg.PrimaryKey())
	}

	cfg = GeminiConfig{APIKeys: nil}
	if cfg.PrimaryKey() != "" {
		t.Fatalf("expected empty string for nil keys")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{HTTP: HTTPConfig{Port: 8080}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for missing model")
	}

	cfg = &Config{
		Gemini: GeminiConfig{Model: "gemini-2.5-flash"},
		HTTP:   HTTPConfig{Port: 70000},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for invalid port")
	}

	cfg = &Config{
		Gemini: GeminiConfig{Model: "gemini-2.5-flash"},
		HTTP:   HTTPConfig{Port: 8080},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "testdb",
		User:     "user",
		Password: "pass",
	}
	dsn := cfg.DSN()
	if !containsSubstring(dsn, "postgresql://") {
		t.Fatalf("DSN should start with postgresql://: %s", dsn)
	}
	if !containsSubstring(dsn, "localhost:5432") {
		t.Fatalf("DSN should contain host:port: %s", dsn)
	}
	if !containsSubstring(dsn, "/testdb") {
		t.Fatalf("DSN should contain dbname: %s", dsn)
	}

	cfg.Password = ""
	dsn = cfg.DSN()
	if containsSubstring(dsn, ":@") {
		t.Fatalf("DSN should omit empty password: %s", dsn)
	}
}

func TestMaskSecret(t *testing.T) {
	if maskSecret("") != "<missing>" {
		t.Fatalf("unexpected mask for empty value")
	}
	if maskSecret("abcd") != "****" {
		t.Fatalf("unexpected mask for short value")
	}
	if maskSecret("abcdefgh") != "ab***gh" {
		t.Fatalf("unexpected mask: %s", maskSecret("abcdefgh"))
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
