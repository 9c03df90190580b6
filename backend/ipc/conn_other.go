//go:build !windows

package ipc

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"path"
	"runtime"
)

// socketPath is automatically initialized based on platform conventions:
//   - macOS: ~/Library/Caches/lapwatch/lapwatch.sock (or /tmp/lapwatch-{uid}.sock as fallback)
//   - Linux/Unix: $XDG_RUNTIME_DIR/lapwatch.sock (or /tmp/lapwatch-{uid}.sock as fallback)
var socketPath = "/tmp/lapwatch.sock"

func init() {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			socketPath = path.Join(home, "Library", "Caches", "lapwatch", "lapwatch.sock")
		} else if user, err := user.Current(); err == nil {
			socketPath = fmt.Sprintf("/tmp/lapwatch-%s.sock", user.Uid)
		}
	} else {
		if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
			socketPath = path.Join(runtime, "lapwatch.sock")
		} else if user, err := user.Current(); err == nil {
			socketPath = fmt.Sprintf("/tmp/lapwatch-%s.sock", user.Uid)
		}
	}
	if p := os.Getenv("LAPWATCH_SOCKET_PATH"); p != "" {
		socketPath = p
	}
}

// Dial establishes a connection to the IPC socket.
// Returns an error if the socket doesn't exist or connection fails.
func Dial() (net.Conn, error) {
	return net.Dial("unix", socketPath)
}

// Listen creates a Unix domain socket listener at the configured path.
// A stale socket file left by a crashed instance is removed first;
// callers must have checked that no instance answers on it.
func Listen() (net.Listener, error) {
	os.MkdirAll(path.Dir(socketPath), 0700)
	if _, err := os.Stat(socketPath); err == nil {
		os.Remove(socketPath)
	}
	return net.Listen("unix", socketPath)
}

// DestroyConn removes the Unix socket file from the filesystem.
// Should be called during application shutdown.
func DestroyConn() error {
	return os.Remove(socketPath)
}
