package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeRules(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"allow negative", "allow_negative: true\n", true},
		{"disallow negative", "allow_negative: false\n", false},
		{"empty file keeps defaults", "", false},
		{"unknown keys ignored", "max_level: 20\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRules(t, t.TempDir(), tt.content)

			rules, err := LoadRules(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if rules.AllowNegative != tt.want {
				t.Errorf("allow_negative: got %v, want %v", rules.AllowNegative, tt.want)
			}
		})
	}
}

func TestLoadRules_EmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *rules != *DefaultRules() {
		t.Errorf("got %+v, want defaults", rules)
	}
}

func TestLoadRules_Errors(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeRules(t, t.TempDir(), "allow_negative: [not, a, bool]\n")
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestWatchRules_Reload(t *testing.T) {
	path := writeRules(t, t.TempDir(), "allow_negative: false\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Rules, 8)
	done := make(chan error, 1)
	go func() {
		done <- WatchRules(ctx, path, func(r *Rules) { changes <- r })
	}()

	// The watcher may not be registered yet, so keep rewriting until a
	// reload comes through.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)

	for {
		select {
		case r := <-changes:
			if !r.AllowNegative {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watch returned: %v", err)
			}
			return
		case <-ticker.C:
			if err := os.WriteFile(path, []byte("allow_negative: true\n"), 0o600); err != nil {
				t.Fatalf("rewrite rules: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for rules reload")
		}
	}
}

func TestWatchRules_MissingFile(t *testing.T) {
	err := WatchRules(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), func(*Rules) {})
	if err == nil {
		t.Fatal("expected error watching a missing file")
	}
}

func TestWatchRules_RenameOver(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "allow_negative: false\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Rules, 8)
	done := make(chan error, 1)
	go func() {
		done <- WatchRules(ctx, path, func(r *Rules) { changes <- r })
	}()

	// Save the way editors do: write a sibling file, then rename it over
	// the watched one. Repeat to check the watch survives each replace.
	save := func(content string) {
		tmp := filepath.Join(dir, "rules.yaml.tmp")
		if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
			t.Fatalf("write temp rules: %v", err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatalf("rename rules: %v", err)
		}
	}

	for _, want := range []bool{true, false, true} {
		content := "allow_negative: false\n"
		if want {
			content = "allow_negative: true\n"
		}

		ticker := time.NewTicker(50 * time.Millisecond)
		deadline := time.After(5 * time.Second)
	wait:
		for {
			select {
			case r := <-changes:
				if r.AllowNegative == want {
					break wait
				}
			case <-ticker.C:
				save(content)
			case <-deadline:
				ticker.Stop()
				t.Fatalf("timed out waiting for allow_negative=%v after rename", want)
			}
		}
		ticker.Stop()
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch returned: %v", err)
	}
}
