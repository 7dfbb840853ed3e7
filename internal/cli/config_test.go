package cli

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/qrink/qrink/pkg/style"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStyleProfile(t *testing.T) {
	path := writeProfile(t, `
eye = "rounded"
eye_radius = 18.0
eye_color = "#1a1a8c"
module = "circle"
module_color = "#262626"
gapless = false
background = "#f0f0f0"
quiet_zone = 4

[logo]
width = 64.0
height = 48.0
tint = "#ffffff80"
`)

	p, err := loadStyleProfile(path)
	if err != nil {
		t.Fatalf("loadStyleProfile() error = %v", err)
	}
	if p.Eye != "rounded" || p.EyeRadius != 18 {
		t.Errorf("eye = %s/%v, want rounded/18", p.Eye, p.EyeRadius)
	}
	if p.QuietZone != 4 {
		t.Errorf("quiet_zone = %d, want 4", p.QuietZone)
	}

	st := style.Default()
	if err := p.apply(&st); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if st.Eye.Kind() != style.EyeRounded || st.Eye.Radius() != 18 {
		t.Error("eye shape not applied")
	}
	if st.Module != style.ModuleCircle {
		t.Error("module shape not applied")
	}
	if st.Gapless {
		t.Error("gapless = true, want false")
	}
	if st.EyeColor != (color.RGBA{R: 0x1a, G: 0x1a, B: 0x8c, A: 0xff}) {
		t.Errorf("eye color = %v", st.EyeColor)
	}
	if st.Image.Width != 64 || st.Image.Height != 48 {
		t.Errorf("logo size = %vx%v, want 64x48", st.Image.Width, st.Image.Height)
	}
}

func TestStyleProfileApplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile styleProfile
	}{
		{name: "bad eye shape", profile: styleProfile{Eye: "triangle"}},
		{name: "bad module shape", profile: styleProfile{Module: "hex"}},
		{name: "bad color", profile: styleProfile{EyeColor: "not-a-color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := style.Default()
			if err := tt.profile.apply(&st); err == nil {
				t.Error("apply() expected error")
			}
		})
	}
}

func TestLoadStyleProfileMissingFile(t *testing.T) {
	if _, err := loadStyleProfile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("loadStyleProfile() expected error for missing file")
	}
}
