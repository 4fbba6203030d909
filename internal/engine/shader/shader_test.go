package shader

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glowstage/internal/engine/lighting"
)

func TestEveryProgramHasSources(t *testing.T) {
	for name := range programs {
		vs, fs, err := Sources(name)
		if err != nil {
			t.Fatalf("Sources(%q): %v", name, err)
		}
		for _, src := range []string{vs, fs} {
			if !strings.HasPrefix(src, "#version 410 core") {
				t.Errorf("%s: source does not start with #version 410 core", name)
			}
			if !strings.Contains(src, "void main()") {
				t.Errorf("%s: source has no main", name)
			}
		}
	}
}

func TestUnknownProgram(t *testing.T) {
	if _, _, err := Sources("toon"); err == nil {
		t.Error("Sources accepted an unknown program")
	}
	if _, err := Source("missing.frag"); err == nil {
		t.Error("Source accepted a missing file")
	}
}

// Varyings written by a vertex stage must be read by the paired fragment
// stage under the same name.
func TestStageInterfacesMatch(t *testing.T) {
	outRe := regexp.MustCompile(`(?m)^out\s+\w+\s+(\w+);`)
	inRe := regexp.MustCompile(`(?m)^in\s+\w+\s+(\w+);`)

	for name := range programs {
		vs, fs, err := Sources(name)
		if err != nil {
			t.Fatal(err)
		}
		outs := make(map[string]bool)
		for _, m := range outRe.FindAllStringSubmatch(vs, -1) {
			outs[m[1]] = true
		}
		for _, m := range inRe.FindAllStringSubmatch(fs, -1) {
			if !outs[m[1]] {
				t.Errorf("%s: fragment input %s not written by vertex stage", name, m[1])
			}
		}
	}
}

func TestLitPointLightLimitMatchesLighting(t *testing.T) {
	src, err := Source("lit.frag")
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("#define MAX_POINT_LIGHTS %d", lighting.MaxPointLights)
	if !strings.Contains(src, want) {
		t.Errorf("lit.frag does not declare %q", want)
	}
}

func TestInfoLog(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte{0}, "no driver log"},
		{"nul terminated", []byte("ERROR: 0:3: 'x' : undeclared\n\x00junk"), "ERROR: 0:3: 'x' : undeclared"},
		{"multi line", []byte("ERROR: a\nERROR:  b\n"), "ERROR: a | ERROR: b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := infoLog(tt.in); got != tt.want {
				t.Errorf("infoLog = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStageName(t *testing.T) {
	if got := stageName(gl.VERTEX_SHADER); got != "vertex" {
		t.Errorf("stageName(vertex) = %q", got)
	}
	if got := stageName(gl.FRAGMENT_SHADER); got != "fragment" {
		t.Errorf("stageName(fragment) = %q", got)
	}
}
