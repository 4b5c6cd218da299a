// Package naming derives and validates crate, package, and type identifiers
// from arbitrary user input.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separators used for the two identifier styles.
const (
	CrateSep   = '-'
	PackageSep = '_'
)

var nonWordRun = regexp.MustCompile(`\W+`)

// Normalize lowercases raw, replaces every character outside [a-z0-9] with
// sep, collapses separator runs, strips leading characters that are not
// lowercase letters, and strips one trailing non-alphanumeric character.
//
// The result only contains [a-z0-9] and sep, never starts or ends with sep,
// and Normalize(Normalize(s, sep), sep) == Normalize(s, sep).
func Normalize(raw string, sep rune) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSep := false
	for _, r := range strings.ToLower(raw) {
		if isLowerAlnum(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	out := strings.TrimLeftFunc(b.String(), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	return stripTrailing(out)
}

func stripTrailing(s string) string {
	last, size := utf8.DecodeLastRuneInString(s)
	if size > 0 && !isLowerAlnum(last) {
		return s[:len(s)-size]
	}
	return s
}

func isLowerAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// CrateNameFrom normalizes raw into a kebab-case crate name.
func CrateNameFrom(raw string) string {
	return Normalize(raw, CrateSep)
}

// PackageNameFrom normalizes raw into a snake_case package name.
func PackageNameFrom(raw string) string {
	return Normalize(raw, PackageSep)
}

// CrateNameFromPath derives the crate name from the final path element,
// without its extension.
func CrateNameFromPath(path string) string {
	base := filepath.Base(filepath.Clean(path))
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return CrateNameFrom(base)
}

// PackageNameFromStringOrPath returns the explicit name when given, otherwise
// the crate name derived from path, normalized to snake_case.
func PackageNameFromStringOrPath(name, path string) string {
	if name != "" {
		return PackageNameFrom(name)
	}
	return PackageNameFrom(CrateNameFromPath(path))
}

// StructNameFromPackageName converts a package name into a PascalCase type name.
func StructNameFromPackageName(name string) string {
	var b strings.Builder
	for _, segment := range strings.Split(PackageNameFrom(name), string(PackageSep)) {
		b.WriteString(Capitalize(segment))
	}
	return b.String()
}

// ToPascalCase splits raw on runs of non-word characters, capitalizes each
// part, and concatenates them.
func ToPascalCase(raw string) string {
	var b strings.Builder
	for _, part := range nonWordRun.Split(raw, -1) {
		b.WriteString(Capitalize(part))
	}
	return b.String()
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ErrorTypeName builds an error type identifier, such as ReqwestError for
// "reqwest". A trailing "error" in raw is not repeated.
func ErrorTypeName(raw string) string {
	name := StructNameFromPackageName(raw)
	if len(name) >= len("Error") && strings.EqualFold(name[len(name)-len("Error"):], "Error") {
		name = name[:len(name)-len("Error")]
	}
	return name + "Error"
}
