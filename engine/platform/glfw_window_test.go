package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/shaderkit/engine/core"
)

func TestTranslateKey(t *testing.T) {
	cases := map[glfw.Key]core.Key{
		glfw.KeyEscape: core.KeyEscape,
		glfw.KeySpace:  core.KeySpace,
		glfw.KeyQ:      core.KeyQ,
		glfw.KeyF1:     core.KeyUnknown,
	}
	for in, want := range cases {
		if got := translateKey(in); got != want {
			t.Errorf("translateKey(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestTranslateMods(t *testing.T) {
	got := translateMods(glfw.ModShift | glfw.ModControl)
	if got != core.ModShift|core.ModCtrl {
		t.Errorf("translateMods = %b, want shift|ctrl", got)
	}
	if translateMods(0) != core.ModNone {
		t.Error("no modifiers should map to ModNone")
	}
}

func TestContextHintsRequestForwardCompatibleCore(t *testing.T) {
	hints := map[glfw.Hint]int{}
	for _, h := range contextHints(core.Config{GLMajor: 4, GLMinor: 1}) {
		hints[h.hint] = h.value
	}

	if hints[glfw.ContextVersionMajor] != 4 || hints[glfw.ContextVersionMinor] != 1 {
		t.Errorf("version hints = %d.%d, want 4.1", hints[glfw.ContextVersionMajor], hints[glfw.ContextVersionMinor])
	}
	if hints[glfw.OpenGLProfile] != glfw.OpenGLCoreProfile {
		t.Error("core profile not requested")
	}
	if v, ok := hints[glfw.OpenGLForwardCompatible]; !ok || v != glfw.True {
		t.Error("forward-compatible hint missing; macOS refuses core contexts without it")
	}
}
