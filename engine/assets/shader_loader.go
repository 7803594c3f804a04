package assets

import (
	"fmt"
	"io/fs"
	"os"
)

// ShaderSource reads a whole shader file as text.
// A nil fsys reads from the OS filesystem, so path may be absolute.
func ShaderSource(fsys fs.FS, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if fsys == nil {
		b, err = os.ReadFile(path)
	} else {
		b, err = fs.ReadFile(fsys, path)
	}
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}
	return string(b), nil
}
