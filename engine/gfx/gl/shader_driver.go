package glbackend

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/hubastard/shaderkit/engine/gfx/shader"
)

// ShaderDriver implements shader.Driver on the current GL context.
type ShaderDriver struct{}

// NewShaderDriver returns a driver bound to whatever context is current.
func NewShaderDriver() ShaderDriver { return ShaderDriver{} }

var stageEnums = map[shader.Stage]uint32{
	shader.StageVertex:         gl.VERTEX_SHADER,
	shader.StageFragment:       gl.FRAGMENT_SHADER,
	shader.StageTessControl:    gl.TESS_CONTROL_SHADER,
	shader.StageTessEvaluation: gl.TESS_EVALUATION_SHADER,
	shader.StageGeometry:       gl.GEOMETRY_SHADER,
	shader.StageCompute:        gl.COMPUTE_SHADER,
}

var paramEnums = map[shader.Param]uint32{
	shader.CompileStatus: gl.COMPILE_STATUS,
	shader.LinkStatus:    gl.LINK_STATUS,
	shader.InfoLogLength: gl.INFO_LOG_LENGTH,
}

func (ShaderDriver) CreateProgram() uint32     { return gl.CreateProgram() }
func (ShaderDriver) DeleteProgram(p uint32)    { gl.DeleteProgram(p) }
func (ShaderDriver) DeleteShader(sh uint32)    { gl.DeleteShader(sh) }
func (ShaderDriver) CompileShader(sh uint32)   { gl.CompileShader(sh) }
func (ShaderDriver) AttachShader(p, sh uint32) { gl.AttachShader(p, sh) }
func (ShaderDriver) LinkProgram(p uint32)      { gl.LinkProgram(p) }
func (ShaderDriver) UseProgram(p uint32)       { gl.UseProgram(p) }

func (ShaderDriver) CreateShader(stage shader.Stage) uint32 {
	e, ok := stageEnums[stage]
	if !ok {
		return 0
	}
	return gl.CreateShader(e)
}

func (ShaderDriver) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
}

func (ShaderDriver) BindAttribLocation(p, index uint32, name string) {
	gl.BindAttribLocation(p, index, gl.Str(name+"\x00"))
}

func (ShaderDriver) GetShaderiv(sh uint32, pname shader.Param) int32 {
	var v int32
	gl.GetShaderiv(sh, paramEnums[pname], &v)
	return v
}

func (ShaderDriver) GetProgramiv(p uint32, pname shader.Param) int32 {
	var v int32
	gl.GetProgramiv(p, paramEnums[pname], &v)
	return v
}

func (ShaderDriver) GetShaderInfoLog(sh uint32, bufSize int32) string {
	return readInfoLog(bufSize, func(buf *uint8) { gl.GetShaderInfoLog(sh, bufSize, nil, buf) })
}

func (ShaderDriver) GetProgramInfoLog(p uint32, bufSize int32) string {
	return readInfoLog(bufSize, func(buf *uint8) { gl.GetProgramInfoLog(p, bufSize, nil, buf) })
}

// readInfoLog hands fill a zeroed byte buffer of bufSize and returns the
// NUL-terminated text it wrote.
func readInfoLog(bufSize int32, fill func(buf *uint8)) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]byte, bufSize)
	fill(&buf[0])
	return gl.GoStr(&buf[0])
}

var _ shader.Driver = ShaderDriver{}
