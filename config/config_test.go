// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordnet/ramdict"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wordnet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoad_yaml(t *testing.T) {
	path := writeYAML(t, `
database:
  dir: "/usr/share/wordnet"
  append_adjective_marker: true
loader:
  in_memory: true
  policy: "immediate"
  rate: 5000
log:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	expected := &Config{
		Database: DatabaseConfig{
			Dir:                   "/usr/share/wordnet",
			AppendAdjectiveMarker: true,
		},
		Loader: LoaderConfig{
			InMemory: true,
			Policy:   "immediate",
			Rate:     5000,
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "json",
		},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}

	policy, err := cfg.Loader.LoadPolicy()
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if diff := cmp.Diff(ramdict.Immediate, policy); diff != "" {
		t.Errorf("LoadPolicy (-want, +got):\n%s", diff)
	}
}

func TestLoad_envOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
database:
  dir: "/usr/share/wordnet"
`)
	t.Setenv("WORDNET_DIR", "/opt/wordnet")
	t.Setenv("WORDNET_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff("/opt/wordnet", cfg.Database.Dir); diff != "" {
		t.Errorf("Dir (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("warn", cfg.Log.Level); diff != "" {
		t.Errorf("Level (-want, +got):\n%s", diff)
	}
}

func TestLoad_envOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WORDNET_CONFIG", "")
	t.Setenv("WORDNET_SNAPSHOT", "/tmp/wordnet.snap")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	expected := &Config{
		Database: DatabaseConfig{Snapshot: "/tmp/wordnet.snap"},
		Loader:   LoaderConfig{Policy: "background"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
}

func TestLoad_missingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load: want error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{
			name: "valid",
			cfg:  Config{Log: LogConfig{Level: "info", Format: "text"}},
			ok:   true,
		},
		{
			name: "bad policy",
			cfg: Config{
				Loader: LoaderConfig{Policy: "lazy"},
				Log:    LogConfig{Level: "info", Format: "text"},
			},
		},
		{
			name: "negative rate",
			cfg: Config{
				Loader: LoaderConfig{Rate: -1},
				Log:    LogConfig{Level: "info", Format: "text"},
			},
		},
		{
			name: "bad format",
			cfg:  Config{Log: LogConfig{Level: "info", Format: "xml"}},
		},
		{
			name: "bad level",
			cfg:  Config{Log: LogConfig{Level: "verbose", Format: "text"}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.cfg.Validate()
			if diff := cmp.Diff(test.ok, err == nil); diff != "" {
				t.Errorf("Validate error %v (-want, +got):\n%s", err, diff)
			}
		})
	}
}
