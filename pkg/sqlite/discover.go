package sqlite

import (
	"fmt"
	"os"
	"strings"
)

// Discover resolves the database location from a prioritized list of
// candidate paths and returns the first one that exists. If none exists the
// error names every searched location so the operator can tell where to put
// the file. Nothing is rendered against a missing store.
func Discover(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no candidate database paths configured")
	}
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("database not found; searched: %s", strings.Join(candidates, ", "))
}
