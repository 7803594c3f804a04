package shader

import (
	"fmt"
	"strings"
)

// Stage is one pipeline phase a shader source compiles to.
type Stage int

const (
	StageUnknown Stage = iota
	StageVertex
	StageFragment
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageCompute
)

var extensions = [...]string{
	StageVertex:         ".vs",
	StageFragment:       ".fs",
	StageTessControl:    ".tesc",
	StageTessEvaluation: ".tese",
	StageGeometry:       ".gs",
	StageCompute:        ".glcs",
}

var names = [...]string{
	StageVertex:         "vertex",
	StageFragment:       "fragment",
	StageTessControl:    "tess-control",
	StageTessEvaluation: "tess-evaluation",
	StageGeometry:       "geometry",
	StageCompute:        "compute",
}

// Stages lists every recognized stage in declaration order.
func Stages() []Stage {
	return []Stage{StageVertex, StageFragment, StageTessControl, StageTessEvaluation, StageGeometry, StageCompute}
}

// Valid reports whether s is a recognized stage.
func (s Stage) Valid() bool { return s > StageUnknown && s <= StageCompute }

// Extension returns the file extension the stage's source is stored under.
func (s Stage) Extension() (string, bool) {
	if !s.Valid() {
		return "", false
	}
	return extensions[s], true
}

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return names[s]
}

// ParseStage accepts a stage name, its file extension (with or without the
// dot) or the usual GLSL short forms: vert, frag, tesc, tese, geom, comp.
func ParseStage(name string) (Stage, error) {
	n := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	switch n {
	case "vs", "vert", "vertex":
		return StageVertex, nil
	case "fs", "frag", "fragment":
		return StageFragment, nil
	case "tesc", "tess-control":
		return StageTessControl, nil
	case "tese", "tess-evaluation":
		return StageTessEvaluation, nil
	case "gs", "geom", "geometry":
		return StageGeometry, nil
	case "glcs", "comp", "compute":
		return StageCompute, nil
	}
	return StageUnknown, fmt.Errorf("unknown shader stage %q", name)
}
