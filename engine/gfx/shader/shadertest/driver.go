// Package shadertest provides an in-memory shader.Driver that follows GL
// object lifetime rules closely enough to test programs without a context.
//
// Compilation fails for empty sources and for sources containing "#error";
// linking fails when nothing is attached or when any attached source
// contains "#linkerror".
package shadertest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hubastard/shaderkit/engine/gfx/shader"
)

type shaderObj struct {
	stage    shader.Stage
	src      string
	compiled bool
	log      string
	attached int
	flagged  bool
}

type programObj struct {
	shaders map[uint32]bool
	attribs map[string]uint32
	linked  bool
	log     string
	flagged bool
}

// Driver is a fake shader.Driver. The zero value is not usable; call New.
type Driver struct {
	// FailCreateProgram makes CreateProgram return 0.
	FailCreateProgram bool
	// FailCreateShader makes CreateShader return 0 for the listed stages.
	FailCreateShader map[shader.Stage]bool

	next     uint32
	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	bound    uint32
	invalid  int
}

// New returns an empty driver.
func New() *Driver {
	return &Driver{
		shaders:  map[uint32]*shaderObj{},
		programs: map[uint32]*programObj{},
	}
}

func (d *Driver) alloc() uint32 {
	d.next++
	return d.next
}

func (d *Driver) CreateProgram() uint32 {
	if d.FailCreateProgram {
		return 0
	}
	id := d.alloc()
	d.programs[id] = &programObj{shaders: map[uint32]bool{}, attribs: map[string]uint32{}}
	return id
}

func (d *Driver) DeleteProgram(program uint32) {
	if program == 0 {
		return
	}
	p, ok := d.programs[program]
	if !ok {
		d.invalid++
		return
	}
	if d.bound == program {
		p.flagged = true
		return
	}
	d.freeProgram(program, p)
}

func (d *Driver) freeProgram(id uint32, p *programObj) {
	for sh := range p.shaders {
		if s, ok := d.shaders[sh]; ok {
			s.attached--
			if s.flagged && s.attached == 0 {
				delete(d.shaders, sh)
			}
		}
	}
	delete(d.programs, id)
}

func (d *Driver) CreateShader(stage shader.Stage) uint32 {
	if !stage.Valid() || d.FailCreateShader[stage] {
		return 0
	}
	id := d.alloc()
	d.shaders[id] = &shaderObj{stage: stage}
	return id
}

func (d *Driver) DeleteShader(sh uint32) {
	if sh == 0 {
		return
	}
	s, ok := d.shaders[sh]
	if !ok {
		d.invalid++
		return
	}
	if s.attached > 0 {
		s.flagged = true
		return
	}
	delete(d.shaders, sh)
}

func (d *Driver) ShaderSource(sh uint32, src string) {
	if s, ok := d.shaders[sh]; ok {
		s.src = src
		return
	}
	d.invalid++
}

func (d *Driver) CompileShader(sh uint32) {
	s, ok := d.shaders[sh]
	if !ok {
		d.invalid++
		return
	}
	s.compiled, s.log = false, ""
	switch {
	case strings.TrimSpace(s.src) == "":
		s.log = "0:0(0): error: no shader source\n"
	case strings.Contains(s.src, "#error"):
		s.log = fmt.Sprintf("0:%d(1): error: #error directive\n", errorLine(s.src))
	default:
		s.compiled = true
	}
}

func errorLine(src string) int {
	for i, line := range strings.Split(src, "\n") {
		if strings.Contains(line, "#error") {
			return i + 1
		}
	}
	return 0
}

func (d *Driver) AttachShader(program, sh uint32) {
	p, pok := d.programs[program]
	s, sok := d.shaders[sh]
	if !pok || !sok || p.shaders[sh] {
		d.invalid++
		return
	}
	p.shaders[sh] = true
	s.attached++
}

func (d *Driver) BindAttribLocation(program, index uint32, name string) {
	p, ok := d.programs[program]
	if !ok {
		d.invalid++
		return
	}
	p.attribs[name] = index
}

func (d *Driver) LinkProgram(program uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.invalid++
		return
	}
	p.linked, p.log = false, ""
	if len(p.shaders) == 0 {
		p.log = "error: no shaders attached to the program\n"
		return
	}
	for sh := range p.shaders {
		if strings.Contains(d.shaders[sh].src, "#linkerror") {
			p.log = fmt.Sprintf("error: unresolved symbol in %s shader\n", d.shaders[sh].stage)
			return
		}
	}
	p.linked = true
}

func (d *Driver) UseProgram(program uint32) {
	if program != 0 {
		if p, ok := d.programs[program]; !ok || !p.linked {
			d.invalid++
			return
		}
	}
	prev := d.bound
	d.bound = program
	if prev != 0 && prev != program {
		if p, ok := d.programs[prev]; ok && p.flagged {
			d.freeProgram(prev, p)
		}
	}
}

func (d *Driver) GetShaderiv(sh uint32, pname shader.Param) int32 {
	s, ok := d.shaders[sh]
	if !ok {
		d.invalid++
		return 0
	}
	switch pname {
	case shader.CompileStatus:
		return boolToInt(s.compiled)
	case shader.InfoLogLength:
		return logLength(s.log)
	}
	d.invalid++
	return 0
}

func (d *Driver) GetProgramiv(program uint32, pname shader.Param) int32 {
	p, ok := d.programs[program]
	if !ok {
		d.invalid++
		return 0
	}
	switch pname {
	case shader.LinkStatus:
		return boolToInt(p.linked)
	case shader.InfoLogLength:
		return logLength(p.log)
	}
	d.invalid++
	return 0
}

func (d *Driver) GetShaderInfoLog(sh uint32, bufSize int32) string {
	s, ok := d.shaders[sh]
	if !ok {
		d.invalid++
		return ""
	}
	return truncate(s.log, bufSize)
}

func (d *Driver) GetProgramInfoLog(program uint32, bufSize int32) string {
	p, ok := d.programs[program]
	if !ok {
		d.invalid++
		return ""
	}
	return truncate(p.log, bufSize)
}

// LiveShaders counts shader objects the driver still holds.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms counts program objects the driver still holds.
func (d *Driver) LivePrograms() int { return len(d.programs) }

// Attached returns the stages attached to program, sorted by stage.
func (d *Driver) Attached(program uint32) []shader.Stage {
	p, ok := d.programs[program]
	if !ok {
		return nil
	}
	out := make([]shader.Stage, 0, len(p.shaders))
	for sh := range p.shaders {
		out = append(out, d.shaders[sh].stage)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AttribLocation returns the slot bound to name on program.
func (d *Driver) AttribLocation(program uint32, name string) (uint32, bool) {
	p, ok := d.programs[program]
	if !ok {
		return 0, false
	}
	loc, ok := p.attribs[name]
	return loc, ok
}

// Source returns the last source submitted to sh.
func (d *Driver) Source(sh uint32) (string, bool) {
	s, ok := d.shaders[sh]
	if !ok {
		return "", false
	}
	return s.src, true
}

// Bound returns the active program.
func (d *Driver) Bound() uint32 { return d.bound }

// InvalidOps counts calls a real driver would answer with GL_INVALID_VALUE
// or GL_INVALID_OPERATION.
func (d *Driver) InvalidOps() int { return d.invalid }

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// logLength mirrors GL: the length includes the terminating NUL.
func logLength(s string) int32 {
	if s == "" {
		return 0
	}
	return int32(len(s) + 1)
}

func truncate(s string, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	if limit := int(bufSize) - 1; len(s) > limit {
		return s[:limit]
	}
	return s
}

var _ shader.Driver = (*Driver)(nil)
