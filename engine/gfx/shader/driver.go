package shader

// Param selects the object property queried through Driver.GetShaderiv and
// Driver.GetProgramiv.
type Param int

const (
	CompileStatus Param = iota
	LinkStatus
	InfoLogLength
)

// Driver is the slice of a GL-style graphics API a Program needs.
// Handles are opaque; zero is the invalid handle.
//
// Deletion follows GL rules: a shader flagged by DeleteShader stays alive
// while attached to a program, and DeleteProgram on the bound program is
// deferred until it is unbound.
type Driver interface {
	CreateProgram() uint32
	DeleteProgram(program uint32)
	CreateShader(stage Stage) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	AttachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	LinkProgram(program uint32)
	UseProgram(program uint32)

	// GetShaderiv and GetProgramiv return 1 for a true status.
	GetShaderiv(shader uint32, pname Param) int32
	GetProgramiv(program uint32, pname Param) int32
	// The info log getters return at most bufSize-1 bytes of text.
	GetShaderInfoLog(shader uint32, bufSize int32) string
	GetProgramInfoLog(program uint32, bufSize int32) string
}
