package config

import (
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Empty daemon binary", mutate: func(c *Config) { c.DaemonBinary = "" }},
		{name: "Repo without owner", mutate: func(c *Config) { c.GitHubRepo = "meta-hybrid" }},
		{name: "Repo with extra slash", mutate: func(c *Config) { c.GitHubRepo = "a/b/c" }},
		{name: "Cache TTL too small", mutate: func(c *Config) { c.CacheTTL = time.Second }},
		{name: "Storage poll too small", mutate: func(c *Config) { c.StoragePoll = 100 * time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HYBRIDCTL_REPO", "someone/fork")
	t.Setenv("HYBRIDCTL_CACHE_TTL", "30m")
	t.Setenv("HYBRIDCTL_VERBOSE", "true")

	c := FromEnv()
	if c.GitHubRepo != "someone/fork" {
		t.Errorf("GitHubRepo = %q", c.GitHubRepo)
	}
	if c.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v", c.CacheTTL)
	}
	if !c.Verbose {
		t.Error("Verbose not picked up")
	}
}

func TestRepoOwnerName(t *testing.T) {
	c := Default()
	c.GitHubRepo = "owner/name"
	owner, name := c.RepoOwnerName()
	if owner != "owner" || name != "name" {
		t.Errorf("RepoOwnerName = (%q, %q)", owner, name)
	}
}
