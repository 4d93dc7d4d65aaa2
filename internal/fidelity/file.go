package fidelity

import (
	"fmt"
	"os"
)

// ReadFile reads a map file. The handle is scoped to the call; errors
// carry the path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes serialized map bytes. The handle is scoped to the
// call; errors carry the path.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write map file %s: %w", path, err)
	}
	return nil
}
