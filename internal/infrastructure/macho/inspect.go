// Package macho reports architectures of executables inside app bundles.
package macho

import (
	"bytes"
	"fmt"
	"os"

	gomacho "github.com/blacktop/go-macho"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/ports"
)

var fatMagic = []byte{0xca, 0xfe, 0xba, 0xbe}

// Inspector implements ports.BinaryInspector.
type Inspector struct{}

// NewInspector builds an inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Architectures lists the CPU of a thin binary, or of every slice of a universal one.
func (i *Inspector) Architectures(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", path, domain.ErrIO, err)
	}

	if bytes.HasPrefix(data, fatMagic) {
		fat, err := gomacho.NewFatFile(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse fat binary %s: %w", path, err)
		}
		defer fat.Close()

		archs := make([]string, 0, len(fat.Arches))
		for _, arch := range fat.Arches {
			archs = append(archs, arch.CPU.String())
		}
		return archs, nil
	}

	m, err := gomacho.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse Mach-O %s: %w", path, err)
	}
	defer m.Close()

	return []string{m.CPU.String()}, nil
}

var _ ports.BinaryInspector = (*Inspector)(nil)
