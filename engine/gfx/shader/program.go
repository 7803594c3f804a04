// Package shader builds linked shader programs from per-stage source files.
//
// A program is described by a base file name and an ordered list of stages.
// The source of each stage lives in base+Stage.Extension(), so the base
// "assets/shaders/quad" with StageVertex and StageFragment reads
// "assets/shaders/quad.vs" and "assets/shaders/quad.fs".
//
// Failures never surface as errors: every problem is reported once through
// the logging.Sink and construction carries on with what is left. A program
// may therefore end up with fewer stages attached than requested, or not
// linked at all. Linked reports the latter.
package shader

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/hubastard/shaderkit/engine/assets"
	"github.com/hubastard/shaderkit/engine/logging"
)

// Fixed attribute slots bound before every link.
const (
	PositionAttrib = "position"
	TexCoordAttrib = "texCoord"

	PositionLocation uint32 = 0
	TexCoordLocation uint32 = 1
)

// Program is a driver program object plus the stages it was built from.
// It must be used on the goroutine that owns the graphics context.
type Program struct {
	drv  Driver
	log  logging.Sink
	fsys fs.FS

	id      uint32
	base    string
	stages  []Stage
	shaders []uint32 // parallel to stages, 0 where no shader object exists
	linked  bool
}

// Option configures New.
type Option func(*Program)

// WithSink routes diagnostics to s instead of logging.Default().
func WithSink(s logging.Sink) Option {
	return func(p *Program) { p.log = s }
}

// WithFS reads stage sources from fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) Option {
	return func(p *Program) { p.fsys = fsys }
}

// New compiles every stage and links them into one program.
// It always returns a Program, which must be released with Delete.
func New(drv Driver, base string, stages []Stage, opts ...Option) *Program {
	p := &Program{
		drv:     drv,
		base:    base,
		stages:  make([]Stage, len(stages)),
		shaders: make([]uint32, len(stages)),
	}
	copy(p.stages, stages)
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logging.Default()
	}

	p.id = drv.CreateProgram()
	if p.id == 0 {
		p.warn("shader program could not be initialized: " + base)
		return p
	}
	p.build()
	return p
}

func (p *Program) build() {
	for i, st := range p.stages {
		sh, path, ok := p.compile(st)
		p.shaders[i] = sh
		if !ok {
			continue
		}
		if !p.checkError(sh, CompileStatus, p.drv.GetShaderiv, p.drv.GetShaderInfoLog, " in "+path) {
			p.drv.AttachShader(p.id, sh)
		}
	}

	p.drv.BindAttribLocation(p.id, PositionLocation, PositionAttrib)
	p.drv.BindAttribLocation(p.id, TexCoordLocation, TexCoordAttrib)
	p.drv.LinkProgram(p.id)

	if p.checkError(p.id, LinkStatus, p.drv.GetProgramiv, p.drv.GetProgramInfoLog, " Program "+p.base) {
		// The handle is kept as is; Bind on it is left to the driver.
		p.drv.DeleteProgram(p.id)
	} else {
		p.linked = true
	}

	// Attached shaders live on until the program goes away.
	for _, sh := range p.shaders {
		if sh != 0 {
			p.drv.DeleteShader(sh)
		}
	}
}

// compile creates a shader object for st and submits its source.
// ok is false when there is nothing to check or attach.
func (p *Program) compile(st Stage) (sh uint32, path string, ok bool) {
	ext, known := st.Extension()
	if !known {
		p.log.Log(logging.LevelError, fmt.Sprintf("not a recognized shader type: %d", int(st)))
		return 0, "", false
	}
	path = p.base + ext

	src := p.load(path)

	sh = p.drv.CreateShader(st)
	if sh == 0 {
		p.warn("error creating shader " + path)
		return 0, path, false
	}
	p.drv.ShaderSource(sh, src)
	p.drv.CompileShader(sh)
	return sh, path, true
}

// load returns the file contents, or "" after a warning. The empty source
// is still compiled so the failure shows up in the driver log as well.
func (p *Program) load(path string) string {
	p.log.Log(logging.LevelInfo, "loading shader "+path)
	src, err := assets.ShaderSource(p.fsys, path)
	if err != nil {
		p.warn("could not load shader " + path)
		return ""
	}
	return src
}

type (
	ivFunc      func(obj uint32, pname Param) int32
	infoLogFunc func(obj uint32, bufSize int32) string
)

// checkError queries status on obj and, when it is false, logs the driver's
// info log followed by suffix. It reports whether an error occurred.
func (p *Program) checkError(obj uint32, status Param, iv ivFunc, infoLog infoLogFunc, suffix string) bool {
	if iv(obj, status) == 1 {
		return false
	}
	n := iv(obj, InfoLogLength)
	msg := ""
	if n > 0 {
		msg = strings.TrimRight(infoLog(obj, n), "\r\n\x00")
	}
	p.warn(msg + suffix)
	return true
}

func (p *Program) warn(msg string) { p.log.Log(logging.LevelWarning, msg) }

// Bind makes p the active program. Nothing is checked: binding a program
// whose link failed is passed to the driver as is.
func (p *Program) Bind() { p.drv.UseProgram(p.id) }

// Delete releases the program object. The driver defers the deletion while
// the program is bound. Delete must be called exactly once.
func (p *Program) Delete() {
	p.drv.DeleteProgram(p.id)
	p.stages = nil
	p.shaders = nil
}

// ID returns the driver handle, 0 if the program object was never created.
func (p *Program) ID() uint32 { return p.id }

// Base returns the file name stage extensions are appended to.
func (p *Program) Base() string { return p.base }

// Linked reports whether the link step succeeded.
func (p *Program) Linked() bool { return p.linked }

// Stages returns the requested stage kinds in order.
func (p *Program) Stages() []Stage { return append([]Stage(nil), p.stages...) }

// Shaders returns the shader handles created per stage, 0 where creation
// was skipped. They are flagged for deletion once New returns.
func (p *Program) Shaders() []uint32 { return append([]uint32(nil), p.shaders...) }
