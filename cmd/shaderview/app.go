package main

import (
	"log"

	"github.com/hubastard/shaderkit/engine/assets"
	"github.com/hubastard/shaderkit/engine/colors"
	"github.com/hubastard/shaderkit/engine/core"
	"github.com/hubastard/shaderkit/engine/gfx/shader"
	"github.com/hubastard/shaderkit/engine/profiler"
)

type App struct {
	flags     *flags
	newDriver func() shader.Driver
	opts      []shader.Option
	// openProfile writes the capture on shutdown; profiler.OpenProfilerGraph
	// unless a test swaps it.
	openProfile func() (string, error)

	prog   *shader.Program
	paused bool
	t      float64
}

func (a *App) OnStart(e *core.Engine) {
	if a.flags.profile {
		profiler.Init(1 << 16)
	}

	endBuild := profiler.Start("shader.New " + a.flags.base)
	a.prog = shader.New(a.newDriver(), a.flags.base, a.flags.stages, a.opts...)
	endBuild()
	if !a.prog.Linked() {
		log.Printf("%s: program did not link, drawing only the clear color", a.flags.base)
	}
	e.Window.SetTitle("shaderview - " + a.flags.base)

	if a.flags.texture != "" {
		w, h, pix, err := assets.LoadPNG(nil, a.flags.texture)
		if err != nil {
			log.Printf("texture: %v", err)
			return
		}
		if err := e.Renderer.SetTexture(w, h, pix); err != nil {
			log.Printf("texture: %v", err)
		}
	}
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.WasPressed(core.KeyEscape) || e.Input.WasPressed(core.KeyQ) {
		e.Window.RequestClose()
	}
	if e.Input.WasPressed(core.KeySpace) {
		a.paused = !a.paused
	}
	if a.paused {
		return
	}
	a.t += dt
	if a.flags.pulse {
		e.ClearColor = colors.Pulse(a.flags.clear, float32(a.t))
	}
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	if a.prog == nil || !a.prog.Linked() || !drawable(a.flags.stages) {
		return
	}
	e.Renderer.DrawFullscreen(a.prog)
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.prog != nil {
		a.prog.Delete()
		a.prog = nil
	}
	if a.flags.profile {
		if path, err := a.openProfile(); err == nil {
			log.Println("speedscope dump:", path)
		} else {
			log.Println("profiler dump error:", err)
		}
	}
}
