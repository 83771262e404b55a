package live

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects the invocation syntax for setting a value.
type Platform int

const (
	// PlatformAuto picks Flag or Bare from the running OS.
	PlatformAuto Platform = iota
	// PlatformFlag sets with `sysctl -w key=value` (Linux, FreeBSD, macOS).
	PlatformFlag
	// PlatformBare sets with `sysctl key=value` (OpenBSD).
	PlatformBare
)

func (p Platform) String() string {
	switch p {
	case PlatformAuto:
		return "auto"
	case PlatformFlag:
		return "flag"
	case PlatformBare:
		return "bare"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// ParsePlatform accepts "auto", "flag" or "bare" (case-insensitive). The
// empty string is auto.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PlatformAuto, nil
	case "flag":
		return PlatformFlag, nil
	case "bare":
		return PlatformBare, nil
	}
	return PlatformAuto, fmt.Errorf("unknown platform %q (want auto, flag or bare)", s)
}

// DetectPlatform maps a GOOS value to its platform family.
func DetectPlatform(goos string) Platform {
	if goos == "openbsd" {
		return PlatformBare
	}
	return PlatformFlag
}

func (p Platform) resolve() Platform {
	if p == PlatformAuto {
		return DetectPlatform(runtime.GOOS)
	}
	return p
}
