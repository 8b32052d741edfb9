package supctl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIdentity(t *testing.T) {
	cfg := testConfig(t)

	got, err := Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatal("Load must return the same *Config unchanged")
	}
}

func TestLoadEquivalence(t *testing.T) {
	cfg := testConfig(t)

	data, err := cfg.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	inputs := map[string]any{
		"value":     cfg,
		"json text": string(data),
		"bytes":     data,
		"file path": path,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			loaded, err := Load(input)
			if err != nil {
				t.Fatal(err)
			}
			got, err := loaded.Serialize()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("serialization differs:\n got %s\nwant %s", got, data)
			}
		})
	}
}

func TestLoadUnsupportedInput(t *testing.T) {
	for _, input := range []any{12345, 3.14, []string{"x"}, nil, struct{}{}} {
		_, err := Load(input)
		if !errors.Is(err, ErrUnsupportedInput) {
			t.Errorf("Load(%T) error = %v, want ErrUnsupportedInput", input, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if errors.Is(err, ErrUnsupportedInput) {
			t.Fatal("missing file is an environment failure, not unsupported input")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Load(`{"port": `)
		if err == nil {
			t.Fatal("expected error for malformed JSON")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Load(`{"port": "*:9001", "working_dir": "/tmp", "program": {}}`)
		if err == nil {
			t.Fatal("expected validation error for empty program set")
		}
	})
}
