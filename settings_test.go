package greenzone_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirkon/deepequal"
	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/internal/tlog"
)

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    greenzone.Settings
		wantErr bool
	}{
		{
			name:    "defaults",
			content: "{}",
			want:    greenzone.DefaultSettings(),
		},
		{
			name: "human-sizes",
			content: `
memory_cap: 256 MiB
disk_cap: 1 GiB
disk_save_cap: 1000
developer_build: true
`,
			want: greenzone.Settings{
				MemoryCap:      256 << 20,
				DiskCap:        1 << 30,
				DiskSaveCap:    1000,
				DeveloperBuild: true,
			},
		},
		{
			name:    "partial",
			content: "disk_cap: 0",
			want: func() greenzone.Settings {
				s := greenzone.DefaultSettings()
				s.DiskCap = 0
				return s
			}(),
		},
		{
			name:    "invalid-size",
			content: "memory_cap: a lot",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := greenzone.LoadSettings(path)
			if err != nil {
				if !tt.wantErr {
					tlog.Error(t, errors.Wrap(err, "load settings"))
					return
				}

				tlog.Log(t, err)
				return
			}
			if tt.wantErr {
				t.Error("error expected")
				return
			}

			if !deepequal.Equal(tt.want, got) {
				t.Error("unexpected settings")
				deepequal.SideBySide(t, "settings", tt.want, got)
			}
		})
	}
}

func TestSettingsTotalCap(t *testing.T) {
	s := greenzone.DefaultSettings()
	if s.TotalCap() != 1<<30 {
		t.Errorf("1 GiB total capacity expected, got %s", greenzone.ByteSize(s.TotalCap()))
	}
	if got := s.MemoryCap.String(); got != "512 MiB" {
		t.Errorf("unexpected size rendering %q", got)
	}
}
