// Package pathutil canonicalizes user-supplied paths before they are compared
// or joined: home directory expansion, verbatim prefix removal, drive letter
// casing and lexical cleaning.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
)

// HomeDirFunc returns the current user's home directory.
type HomeDirFunc func() (string, error)

// verbatimPrefixes are the Windows extended-length path markers, in both
// separator styles.
var verbatimPrefixes = []string{`\\?\`, `//?/`}

// Normalize expands a leading home marker and cleans the result. It is a
// fixed point: Normalize(Normalize(p)) == Normalize(p).
func Normalize(p string, home HomeDirFunc) (string, error) {
	// Cleaning first exposes a home marker hidden behind "./", "a/.." or a
	// verbatim prefix.
	expanded, err := ExpandHome(Clean(p), home)
	if err != nil {
		return "", err
	}
	return Clean(expanded), nil
}

// ExpandHome replaces a leading "~" or "~/" with the home directory. Other
// paths, including "~user", are returned unchanged.
func ExpandHome(p string, home HomeDirFunc) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	if home == nil {
		return "", errors.ResolutionError("home directory lookup unavailable").
			WithContext("path", p).
			Build()
	}
	dir, err := home()
	if err != nil || dir == "" {
		return "", errors.WrapError(err, errors.CategoryResolution, "cannot determine home directory").
			WithContext("path", p).
			Fatal().
			Build()
	}
	if p == "~" {
		return dir, nil
	}
	return filepath.Join(dir, p[2:]), nil
}

// Clean strips verbatim prefixes, upper-cases a leading drive letter and
// lexically cleans the path.
func Clean(p string) string {
	// Cleaning can surface a prefix that was hidden behind "./" or "a/..".
	for {
		for stripVerbatim(&p) {
		}
		if p == "" {
			return p
		}
		p = filepath.Clean(p)
		if !hasVerbatim(p) {
			break
		}
	}
	if len(p) >= 2 && p[1] == ':' && isLowerASCII(p[0]) {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	return p
}

func hasVerbatim(p string) bool {
	for _, prefix := range verbatimPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func stripVerbatim(p *string) bool {
	for _, prefix := range verbatimPrefixes {
		if strings.HasPrefix(*p, prefix) {
			*p = (*p)[len(prefix):]
			return true
		}
	}
	return false
}

// Absolute joins a relative path onto base; absolute paths are only cleaned.
func Absolute(p, base string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func isLowerASCII(b byte) bool {
	return b >= 'a' && b <= 'z'
}
