package config

import (
	"fmt"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

type Flags struct {
	CfgPath  string
	DataPath string
	Addr     string
	LogLevel string
}

// ParseFlags parses command line args (without the program name).
func ParseFlags(args []string) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("trackdash", flag.ContinueOnError)
	fs.StringVarP(&f.CfgPath, "config", "c", ".env", "Path of the configuration file")
	fs.StringVarP(&f.DataPath, "data", "d", "", "Path of the tracks CSV file (overrides DATA_PATH)")
	fs.StringVarP(&f.Addr, "addr", "a", "", "Listen address (overrides LISTEN_ADDR)")
	fs.StringVarP(&f.LogLevel, "log-level", "l", "", "Log level: DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return f, err
	}

	f.LogLevel = strings.ToUpper(f.LogLevel)
	if f.LogLevel != "" && !slices.Contains(validLogLevels, f.LogLevel) {
		return f, fmt.Errorf("flag validation error: invalid log level %s (must be one of: %s)",
			f.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return f, nil
}

// MergeFlags lets non-empty flag values win over file and environment values.
func (cfg *Config) MergeFlags(f Flags) {
	cfg.Flags = f
	if f.DataPath != "" {
		cfg.DataCfg.Path = f.DataPath
	}
	if f.Addr != "" {
		cfg.ServerCfg.Addr = f.Addr
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
}
