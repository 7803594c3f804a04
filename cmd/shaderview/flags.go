package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hubastard/shaderkit/engine/colors"
	"github.com/hubastard/shaderkit/engine/gfx/shader"
	"github.com/hubastard/shaderkit/engine/profiler"
)

type flags struct {
	base    string
	stages  []shader.Stage
	width   int
	height  int
	vsync   bool
	clear   colors.Color
	texture string
	glMajor int
	glMinor int
	pulse   bool
	profile bool
}

func parseFlags(args []string, out io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("shaderview", flag.ContinueOnError)
	fs.SetOutput(out)

	base := fs.String("base", "", "Base path of the shader files; each stage reads base+extension (e.g. assets/shaders/quad). This argument is REQUIRED.")
	stages := fs.String("stages", "vs,fs", "Comma separated stages in attach order: vs, fs, tesc, tese, gs, glcs")
	width := fs.Int("width", 1280, "Window width in pixels")
	height := fs.Int("height", 720, "Window height in pixels")
	vsync := fs.Bool("vsync", true, "Wait for vertical sync")
	clear := fs.String("clear", "#141a1f", "Clear color as #rrggbb or #rrggbbaa")
	texture := fs.String("texture", "", "Optional PNG bound to texture unit 0")
	glVersion := fs.String("gl", "4.6", "GL context version as major.minor")
	pulse := fs.Bool("pulse", false, "Slowly pulse the clear color")
	profile := fs.Bool("profile", false, "Record update/render scopes and open a speedscope capture on exit (build with -tags profile)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *base == "" {
		return nil, fmt.Errorf("error: shader base path not provided")
	}

	parsedStages, err := parseStages(*stages)
	if err != nil {
		return nil, fmt.Errorf("error: stages could not be parsed:\n\t%w", err)
	}

	if *width <= 0 || *height <= 0 {
		return nil, fmt.Errorf("error: window size must be greater than 0")
	}

	clearColor, err := colors.Parse(*clear)
	if err != nil {
		return nil, fmt.Errorf("error: clear color could not be parsed:\n\t%w", err)
	}

	major, minor, err := parseGLVersion(*glVersion)
	if err != nil {
		return nil, fmt.Errorf("error: GL version could not be parsed:\n\t%w", err)
	}

	if *profile && !profiler.Enabled() {
		return nil, fmt.Errorf("error: -profile needs a binary built with -tags profile")
	}

	return &flags{
		base:    *base,
		stages:  parsedStages,
		width:   *width,
		height:  *height,
		vsync:   *vsync,
		clear:   clearColor,
		texture: *texture,
		glMajor: major,
		glMinor: minor,
		pulse:   *pulse,
		profile: *profile,
	}, nil
}

func parseStages(s string) ([]shader.Stage, error) {
	var out []shader.Stage
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		st, err := shader.ParseStage(name)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one stage is required")
	}
	return out, nil
}

func parseGLVersion(v string) (int, int, error) {
	operands := strings.Split(v, ".")
	if len(operands) != 2 {
		return 0, 0, fmt.Errorf("invalid format %q, expected \"major.minor\"", v)
	}
	major, err := strconv.Atoi(operands[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid major version %q", operands[0])
	}
	minor, err := strconv.Atoi(operands[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minor version %q", operands[1])
	}
	if major < 3 || (major == 3 && minor < 2) {
		return 0, 0, fmt.Errorf("core profile needs GL 3.2 or newer, got %d.%d", major, minor)
	}
	return major, minor, nil
}

// drawable reports whether the stages describe a raster pipeline; a
// compute-only program has nothing to draw.
func drawable(stages []shader.Stage) bool {
	for _, s := range stages {
		if s == shader.StageVertex {
			return true
		}
	}
	return false
}
