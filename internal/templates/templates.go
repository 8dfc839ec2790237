// Package templates holds files embedded into the slotswap binary.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.toml
var files embed.FS

// ReadFunc reads an embedded template. Tests may replace it.
var ReadFunc = func(path string) ([]byte, error) {
	return files.ReadFile(path)
}

// Read returns the content of the embedded template at path.
func Read(path string) ([]byte, error) {
	return ReadFunc(path)
}

// Walk visits every embedded template under root.
func Walk(root string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(files, root, fn)
}
