package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/slotswap/internal/messages"
)

// HomeEnv overrides the slotswap home directory.
const HomeEnv = "SLOTSWAP_HOME"

// Paths holds resolved paths for the config file and run state.
type Paths struct {
	Home       string
	ConfigPath string
	StateDir   string
	RunsDir    string
}

// PathsFor returns the paths rooted at home.
func PathsFor(home string) Paths {
	return Paths{
		Home:       home,
		ConfigPath: filepath.Join(home, "config.toml"),
		StateDir:   filepath.Join(home, "state"),
		RunsDir:    filepath.Join(home, "state", "runs"),
	}
}

// DefaultPaths resolves $SLOTSWAP_HOME, falling back to ~/.slotswap.
func DefaultPaths() (Paths, error) {
	return resolvePaths(os.Getenv, homedir.Dir)
}

func resolvePaths(getenv func(string) string, homeDir func() (string, error)) (Paths, error) {
	if home := getenv(HomeEnv); home != "" {
		expanded, err := homedir.Expand(home)
		if err != nil {
			return Paths{}, fmt.Errorf(messages.ConfigHomeUnresolvedFmt, err)
		}
		return PathsFor(expanded), nil
	}
	dir, err := homeDir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigHomeUnresolvedFmt, err)
	}
	return PathsFor(filepath.Join(dir, ".slotswap")), nil
}

// ExpandPath expands a leading ~ and cleans the result.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
