package cli

import (
	"os"
	"testing"
)

func TestRootCommand(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root Use = %q, want %q", root.Use, appName)
	}

	want := []string{"render", "validate", "show", "install", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.SetLogLevel(LogDebug)

	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestNewCacheDisabled(t *testing.T) {
	store, err := newCache(t.Context(), true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	defer store.Close()

	if _, ok, _ := store.Get(t.Context(), "anything"); ok {
		t.Error("null cache should never hit")
	}
}

func TestNewCacheFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(redisEnv, "")

	store, err := newCache(t.Context(), false)
	if err != nil {
		t.Fatalf("newCache(false) error: %v", err)
	}
	defer store.Close()

	if err := store.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := store.Get(t.Context(), "k")
	if err != nil || !ok || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v; want v, true, nil", data, ok, err)
	}
}
