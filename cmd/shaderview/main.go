// Command shaderview builds a shader program from per-stage files and draws
// it over a fullscreen quad.
//
//	shaderview -base assets/shaders/quad -stages vs,fs
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hubastard/shaderkit/engine/core"
	glbackend "github.com/hubastard/shaderkit/engine/gfx/gl"
	"github.com/hubastard/shaderkit/engine/gfx/shader"
	"github.com/hubastard/shaderkit/engine/platform"
	"github.com/hubastard/shaderkit/engine/profiler"
)

func main() {
	f, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	cfg := core.Config{
		Title:      "shaderview",
		Width:      f.width,
		Height:     f.height,
		VSync:      f.vsync,
		ClearColor: f.clear,
		GLMajor:    f.glMajor,
		GLMinor:    f.glMinor,
	}
	app := &App{
		flags:       f,
		newDriver:   func() shader.Driver { return glbackend.NewShaderDriver() },
		openProfile: profiler.OpenProfilerGraph,
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
