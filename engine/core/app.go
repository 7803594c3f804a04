package core

import (
	"time"

	"github.com/hubastard/shaderkit/engine/colors"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit, context still current
}

// Engine exposes core services to the App.
type Engine struct {
	Window     Window
	Renderer   Renderer
	Input      *Input
	ClearColor colors.Color
	start      time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Destroy()
}

// Bindable is anything that can make itself the active GPU program.
type Bindable interface{ Bind() }

// Renderer abstraction.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	// SetTexture uploads RGBA8 pixels to texture unit 0, replacing any
	// previous image.
	SetTexture(w, h int, rgba []byte) error
	// DrawFullscreen binds p and draws a quad covering the viewport with
	// position at attribute 0 and texCoord at attribute 1.
	DrawFullscreen(p Bindable)
	GPUVersion() string
	Shutdown()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

// Key/mod enums (subset).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyQ
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor colors.Color
	// GL context version requested from the platform layer.
	GLMajor, GLMinor int
}

// WithDefaults fills zero fields.
func (c Config) WithDefaults() Config {
	if c.Title == "" {
		c.Title = "shaderkit"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.GLMajor == 0 {
		c.GLMajor, c.GLMinor = 4, 6
	}
	return c
}
