package templates

import (
	"embed"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cargocraft/cli/internal/naming"
)

//go:embed files/*.tmpl
var files embed.FS

// funcMap returns the helpers available to every template. Casers keep
// state, so each map gets its own.
func funcMap() template.FuncMap {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	return template.FuncMap{
		"snake":          strcase.ToSnake,
		"kebab":          strcase.ToKebab,
		"camel":          strcase.ToCamel,
		"lowerCamel":     strcase.ToLowerCamel,
		"screamingSnake": strcase.ToScreamingSnake,
		"pascal":         naming.ToPascalCase,
		"upper":          upper.String,
		"lower":          lower.String,
		"title":          title.String,
		"quote":          tomlString,
		"trimCargo": func(name string) string {
			return strings.TrimPrefix(name, "cargo-")
		},
		"join": func(sep string, items []string) string {
			return strings.Join(items, sep)
		},
	}
}

// tomlString renders s as a TOML basic string. Invalid UTF-8 is replaced
// since TOML documents must be valid UTF-8.
func tomlString(s string) (string, error) {
	out, err := toml.Marshal(map[string]string{"v": strings.ToValidUTF8(s, "\uFFFD")})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(string(out), "v = ")), nil
}
