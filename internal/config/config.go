// config.go - CLI configuration, parsed with github.com/spf13/pflag and
// overridable via environment variables.

package config

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// Config holds every knob the CLI entry point exposes.
type Config struct {
	ROMPath    string
	Fullscreen bool
	Scale      int
	LogLevel   string
	Headless   bool
}

// Parse builds a Config from the given arguments (pass os.Args[1:] in
// production; tests pass their own slice). Flags take precedence over
// the matching INVADERS8080_* environment variable, which in turn takes
// precedence over the built-in default.
func Parse(args []string) (Config, error) {
	fs := pflag.NewFlagSet("invaders8080", pflag.ContinueOnError)

	cfg := Config{
		ROMPath:    envString("INVADERS8080_ROM", ""),
		Fullscreen: envBool("INVADERS8080_FULLSCREEN", false),
		Scale:      envInt("INVADERS8080_SCALE", 2),
		LogLevel:   envString("INVADERS8080_LOG_LEVEL", "info"),
		Headless:   envBool("INVADERS8080_HEADLESS", false),
	}

	fs.StringVar(&cfg.ROMPath, "rom", cfg.ROMPath, "path to an invaders.rom dump (empty uses the embedded placeholder)")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "start the window in fullscreen mode")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "integer upscale factor applied to the 224x256 framebuffer")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "one of debug, info, error")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "has no effect at run time; the headless video and audio backends are selected by building with -tags headless")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
