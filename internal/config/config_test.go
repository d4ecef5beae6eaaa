package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := New("")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if c.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", c.HTTP.Addr)
	}
	if c.Storage.Driver != DriverSQLite || c.Storage.SQLitePath != "data/shelter.db" {
		t.Fatalf("unexpected storage config: %+v", c.Storage)
	}
	if c.Shelter.DefaultCapacity != 5 {
		t.Fatalf("expected default capacity 5, got %d", c.Shelter.DefaultCapacity)
	}
	if c.Auth.Mode != AuthDebug {
		t.Fatalf("expected debug auth, got %q", c.Auth.Mode)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SHELTER_HTTP_ADDR", ":9090")
	t.Setenv("SHELTER_STORAGE_DRIVER", "MEMORY")
	t.Setenv("SHELTER_SHELTER_OWNER", " owner-1 ")
	t.Setenv("SHELTER_SHELTER_DEFAULT_CAPACITY", "12")

	v, _ := New("")
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.HTTP.Addr != ":9090" || c.Storage.Driver != DriverMemory {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.Shelter.Owner != "owner-1" || c.Shelter.DefaultCapacity != 12 {
		t.Fatalf("unexpected shelter config: %+v", c.Shelter)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelter.yaml")
	body := "storage:\n  driver: postgres\n  dsn: postgres://x\nauth:\n  mode: jwt\n  jwt_secret: s3cret\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Storage.Driver != DriverPostgres || c.Auth.JWTSecret != "s3cret" {
		t.Fatalf("file not applied: %+v", c)
	}

	out, err := c.YAML()
	if err != nil {
		t.Fatalf("YAML error: %v", err)
	}
	if strings.Contains(string(out), "s3cret") || strings.Contains(string(out), "postgres://x") {
		t.Fatalf("secrets must be redacted:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		v, _ := New("")
		c, err := Load(v)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		return &c
	}

	cases := map[string]func(c *Config){
		"unknown driver":     func(c *Config) { c.Storage.Driver = "mongo" },
		"postgres no dsn":    func(c *Config) { c.Storage.Driver = DriverPostgres },
		"negative capacity":  func(c *Config) { c.Shelter.DefaultCapacity = -1 },
		"capacity overflow":  func(c *Config) { c.Shelter.DefaultCapacity = 70000 },
		"jwt without secret": func(c *Config) { c.Auth.Mode = AuthJWT },
		"remote without url": func(c *Config) { c.Auth.Mode = AuthRemote },
		"bad log level":      func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mod := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mod(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
