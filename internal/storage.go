package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StorageRoots resolves the candidate VS Code user-data roots for the
// current platform, including the Insiders install. Roots that do not
// exist are still returned; discovery skips them silently.
func StorageRoots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}

	var base string
	switch runtime.GOOS {
	case "darwin":
		base = filepath.Join(home, "Library", "Application Support")
	case "linux":
		base = filepath.Join(home, ".config")
	case "windows":
		base = filepath.Join(home, "AppData", "Roaming")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}

	return []string{
		filepath.Join(base, "Code", "User"),
		filepath.Join(base, "Code - Insiders", "User"),
	}, nil
}
