package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/st/internal/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(constants.EnvGitHubOrgID, "")
	t.Setenv(constants.EnvAsanaUserGID, "")

	tests := []struct {
		name     string
		contents string
		missing  bool
		want     Config
		wantErr  bool
	}{
		{
			name:     "both keys",
			contents: "github_org_id = \"O_kgDOABC\"\nasana_user_gid = \"1200\"\n",
			want:     Config{GitHubOrgID: "O_kgDOABC", AsanaUserGID: "1200"},
		},
		{
			name:     "only tracker user",
			contents: "asana_user_gid = \"1200\"\n",
			want:     Config{AsanaUserGID: "1200"},
		},
		{
			name:     "empty file",
			contents: "",
			want:     Config{},
		},
		{
			name:    "missing file",
			missing: true,
			want:    Config{},
		},
		{
			name:     "malformed file",
			contents: "github_org_id = \n",
			want:     Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.toml")
			if !tt.missing {
				path = writeConfig(t, tt.contents)
			}

			got, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "failed to parse") {
				t.Errorf("Load() error = %q, want parse failure", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "github_org_id = \"from-file\"\n")
	t.Setenv(constants.EnvGitHubOrgID, "from-env")
	t.Setenv(constants.EnvAsanaUserGID, "42")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{GitHubOrgID: "from-env", AsanaUserGID: "42"}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/.config/st/config.toml"); got != filepath.Join(home, ".config/st/config.toml") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/etc/st.toml"); got != "/etc/st.toml" {
		t.Errorf("ExpandPath() = %q, want unchanged", got)
	}
	if got := Dir("/tmp/st/config.toml"); got != "/tmp/st" {
		t.Errorf("Dir() = %q, want /tmp/st", got)
	}
}
