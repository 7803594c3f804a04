package core

import (
	"log"
	"runtime"
	"time"

	"github.com/hubastard/shaderkit/engine/profiler"
)

// Run wires the platform window + renderer and executes the main loop.
// The window and renderer must be created on the calling goroutine, which
// keeps the OS thread for the lifetime of the GL context.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cfg = cfg.WithDefaults()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	// The context must still be current when the renderer shuts down.
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:     win,
		Renderer:   rend,
		Input:      NewInput(),
		ClearColor: cfg.ClearColor,
		start:      time.Now(),
	}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		switch ev.(type) {
		case EventResize:
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		case EventCloseRequested:
			win.RequestClose()
		}
	})

	app.OnStart(eng)

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			endUpdate := profiler.Start("Engine.Update")
			app.OnUpdate(eng, float64(tick)/float64(time.Second))
			endUpdate()
			eng.Input.EndUpdate()
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		endRender := profiler.Start("Engine.Render")
		c := eng.ClearColor
		rend.Clear(c[0], c[1], c[2], c[3])
		app.OnRender(eng, alpha)
		endRender()

		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}
