// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// Environ returns base followed by the entries of envFile, so file values
// win over inherited ones. A relative envFile is resolved against baseDir.
// An envFile suffixed with '?' is optional: a missing file is not an error.
// An empty envFile returns base unchanged.
func Environ(base []string, envFile, baseDir string) ([]string, error) {
	if envFile == "" {
		return base, nil
	}

	optional := strings.HasSuffix(envFile, "?")
	path := strings.TrimSuffix(envFile, "?")
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, filepath.FromSlash(path))
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("failed to read env file '%s': %w", envFile, err)
	}

	env := slices.Clone(base)
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		env = append(env, key+"="+vars[key])
	}
	return env, nil
}
