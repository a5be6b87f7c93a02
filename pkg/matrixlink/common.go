package matrixlink

import (
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"os"
	"path/filepath"
)

var ErrNotRunning = errors.New("matrix scanner might not be running")

const socketName = "plancktl.sock"

// SocketPath returns $PLANCKTL_SOCKET if set, otherwise plancktl.sock in the
// XDG runtime directory.
func SocketPath() (string, error) {
	if path := os.Getenv("PLANCKTL_SOCKET"); path != "" {
		return path, nil
	}

	if xdg.RuntimeDir == "" {
		return "", fmt.Errorf("no runtime dir, %w", ErrNotRunning)
	}

	return filepath.Join(xdg.RuntimeDir, socketName), nil
}
