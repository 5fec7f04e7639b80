package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding flags,
// e.g. PYSETUP_PYTHON or PYSETUP_RESOLVE_DEPS.
const EnvPrefix = "PYSETUP"

// Setting keys. Each key is also the name of the matching command-line flag.
const (
	KeyPython      = "python"
	KeyCatalog     = "catalog"
	KeyLog         = "log"
	KeyReport      = "report"
	KeyWheelhouse  = "wheelhouse"
	KeyCategory    = "category"
	KeyResolveDeps = "resolve-deps"
	KeyNoClear     = "no-clear"
)

// DefaultLogPath is the failure log written when --log is not given.
const DefaultLogPath = "Failed.txt"

// DefaultPython returns the interpreter name used to run pip on this platform.
func DefaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// LoadSettings resolves Settings from the given flag set and the environment.
// Flags explicitly set on the command line win over environment variables,
// which win over flag defaults.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPython, DefaultPython())
	v.SetDefault(KeyLog, DefaultLogPath)

	// Only bind flags the command actually defines
	for _, key := range []string{
		KeyPython, KeyCatalog, KeyLog, KeyReport, KeyWheelhouse,
		KeyCategory, KeyResolveDeps, KeyNoClear,
	} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return Settings{}, fmt.Errorf("failed to bind flag --%s: %w", key, err)
		}
	}

	s := Settings{
		Python:      v.GetString(KeyPython),
		CatalogPath: v.GetString(KeyCatalog),
		LogPath:     v.GetString(KeyLog),
		ReportPath:  v.GetString(KeyReport),
		Wheelhouse:  v.GetString(KeyWheelhouse),
		Categories:  listSetting(v.Get(KeyCategory)),
		ResolveDeps: v.GetBool(KeyResolveDeps),
		NoClear:     v.GetBool(KeyNoClear),
	}

	if strings.TrimSpace(s.Python) == "" {
		return Settings{}, fmt.Errorf("python interpreter must not be empty")
	}
	return s, nil
}

// listSetting normalizes a list-valued setting. Flags arrive already split;
// environment variables arrive as one comma-separated string, and names may
// contain spaces ("Web Development,API Requests").
func listSetting(raw any) []string {
	var parts []string
	switch val := raw.(type) {
	case nil:
		return nil
	case []string:
		parts = val
	case string:
		parts = strings.Split(val, ",")
	default:
		parts = cast.ToStringSlice(val)
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
