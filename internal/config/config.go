package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigureScriptPath       = "${workspaceFolder}/tools/configure.sh"
	DefaultCustomConfigureScriptPath = "${workspaceFolder}/tools/custom_configure.sh"
	DefaultSettingsFile              = ".nuttxconf.yaml"

	SearcherFind = "find"
	SearcherWalk = "walk"
)

// Settings holds nuttxconf configuration from .nuttxconf.yaml and the environment
type Settings struct {
	ConfigureScript       string        `yaml:"configure_script_path" validate:"required"`
	CustomConfigureScript string        `yaml:"custom_configure_script_path" validate:"required"`
	ListTimeout           time.Duration `yaml:"list_timeout" validate:"gte=0"`
	LoadingDelay          *time.Duration `yaml:"loading_delay" validate:"omitnil,gte=0"`
	KeepBlankLines        bool          `yaml:"keep_blank_lines"`
	AwaitOpen             bool          `yaml:"await_open"`
	Searcher              string        `yaml:"searcher" validate:"oneof=find walk"`
	Editor                string        `yaml:"editor"`
}

// Default returns the settings used when nothing is configured
func Default() *Settings {
	return &Settings{
		ConfigureScript:       DefaultConfigureScriptPath,
		CustomConfigureScript: DefaultCustomConfigureScriptPath,
		Searcher:              SearcherFind,
	}
}

// ConfigureScriptPath implements ports.SettingsSource
func (s *Settings) ConfigureScriptPath() string {
	return s.ConfigureScript
}

// CustomConfigureScriptPath implements ports.SettingsSource
func (s *Settings) CustomConfigureScriptPath() string {
	return s.CustomConfigureScript
}

// LoadingDelayOr returns loading_delay, or def when the file leaves it unset
func (s *Settings) LoadingDelayOr(def time.Duration) time.Duration {
	if s.LoadingDelay == nil {
		return def
	}
	return *s.LoadingDelay
}

// Validate checks that the settings have usable values
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// WorkspacePath returns the workspace root from NUTTXCONF_WORKSPACE,
// falling back to the current directory.
func WorkspacePath() string {
	if env := os.Getenv("NUTTXCONF_WORKSPACE"); env != "" {
		return env
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return ""
}

// SettingsPath resolves the settings file.
//
// Precedence:
//  1. explicit argument
//  2. NUTTXCONF_CONFIG env var
//  3. .nuttxconf.yaml in the workspace root
func SettingsPath(explicit, workspaceRoot string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("NUTTXCONF_CONFIG"); env != "" {
		return env
	}
	if workspaceRoot == "" {
		return ""
	}
	return filepath.Join(workspaceRoot, DefaultSettingsFile)
}

// Load reads settings from path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	applyEnv(s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyEnv(s *Settings) {
	if env := os.Getenv("NUTTXCONF_CONFIGURE_SCRIPT"); env != "" {
		s.ConfigureScript = env
	}
	if env := os.Getenv("NUTTXCONF_CUSTOM_CONFIGURE_SCRIPT"); env != "" {
		s.CustomConfigureScript = env
	}
	if env := os.Getenv("NUTTXCONF_EDITOR"); env != "" {
		s.Editor = env
	}
}
