// Package rom reads program images from disk.
package rom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chip8/cpu"
)

// errors returned by Load
var (
	ErrEmpty    = errors.New("rom image is empty")
	ErrTooLarge = errors.New("rom image does not fit into memory")
)

// Image is a program image read from disk.
type Image struct {
	Path string
	Data []byte
}

// Name returns the file name of the image without directory.
func (i *Image) Name() string {
	return filepath.Base(i.Path)
}

// Size returns the image size in bytes.
func (i *Image) Size() int {
	return len(i.Data)
}

// Load reads the image file and checks that it fits into program memory.
func Load(path string) (*Image, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if len(buf) > cpu.MaxProgramSize {
		return nil, fmt.Errorf("%w: %s has %d bytes, maximum is %d", ErrTooLarge, path, len(buf), cpu.MaxProgramSize)
	}
	return &Image{Path: path, Data: buf}, nil
}
