package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseProfileDefaultsMissingFields(t *testing.T) {
	p, err := ParseProfile([]byte("topics:\n  default: 5\nfeatures: [battery]\n"))
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}

	want := DefaultProfile()
	want.Topics.Default = 5
	want.Features = []string{"battery"}

	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProfileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"default above max", "topics:\n  default: 12\n"},
		{"min above max", "topics:\n  min: 8\n  max: 4\n  default: 4\n"},
		{"negative clusters", "segmentation:\n  clusters: -1\n"},
		{"threshold out of range", "polarity_threshold: 1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("got %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile(\"\"): %v", err)
	}
	if diff := cmp.Diff(DefaultProfile(), p); diff != "" {
		t.Errorf("empty path should give defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("intensity:\n  bins: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Intensity.Bins != 10 {
		t.Errorf("bins = %d, want 10", p.Intensity.Bins)
	}

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShippedProfileMatchesDefaults(t *testing.T) {
	p, err := LoadProfile("profile.yaml")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if diff := cmp.Diff(DefaultProfile(), p); diff != "" {
		t.Errorf("config/profile.yaml drifted from defaults (-want +got):\n%s", diff)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("HF_REQUESTS_PER_MINUTE", "not-a-number")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL.Minutes() != 5 {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.HFRequestsPerMinute != DEFAULT_HF_RPM {
		t.Errorf("HFRequestsPerMinute = %d, want default", cfg.HFRequestsPerMinute)
	}
}
