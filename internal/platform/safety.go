package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the temp subdirectory dev runs are re-rooted into.
const DevDirName = "quire-dev"

// IsDevRun reports whether the process was started by `go run` or `go test`,
// both of which build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveLocation returns the directory a notebook should live in. With
// forceTemp set, paths outside the temp dir are moved under
// $TMPDIR/quire-dev/<base> so dev runs never touch the real workspace.
func ResolveLocation(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	tempRoot := os.TempDir()

	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(tempRoot, clean)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return clean
		}
	}

	sub := filepath.Base(clean)
	if userPath == "" || sub == "." || sub == string(os.PathSeparator) {
		sub = "default"
	}

	return filepath.Join(tempRoot, DevDirName, sub)
}
