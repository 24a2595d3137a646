// internal/spi/spidev/spidev_test.go
package spidev

import (
	"path/filepath"
	"testing"
)

func TestOpen_RequiresExistingNode(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := Open(Config{Path: filepath.Join(t.TempDir(), "spidev9.9")}); err == nil {
		t.Fatalf("expected error for missing node")
	}
}
