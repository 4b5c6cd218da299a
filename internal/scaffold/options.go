// Package scaffold turns validated options into a deterministic plan of
// templates and target files for a new crate.
package scaffold

// Defaults applied by DefaultOptions.
const (
	DefaultVersion   = "0.0.1"
	DefaultBinName   = "{{crate_name}}"
	DefaultEdition   = "2021"
	DefaultToolchain = "nightly"
)

// Options are the raw, flag-bound settings for one run. They are snapshotted
// verbatim into the receipt.
type Options struct {
	Path        string   `json:"path"`
	PackageName string   `json:"packageName,omitempty"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Deps        []string `json:"deps,omitempty"`
	CLI         bool     `json:"cli"`
	Bare        bool     `json:"bare"`
	BinName     string   `json:"binName"`
	Bins        []string `json:"bins,omitempty"`
	Subcommands []string `json:"subcommands,omitempty"`
	ValueEnum   bool     `json:"valueEnum"`
	Main        bool     `json:"main"`
	LibPath     string   `json:"libPath,omitempty"`
	BinPath     string   `json:"binPath,omitempty"`
	Edition     string   `json:"edition"`
	Toolchain   string   `json:"toolchain"`

	// Baseline replaces the default baseline dependency specs when set.
	Baseline []string `json:"baseline,omitempty"`

	Verbose  bool `json:"verbose"`
	Quiet    bool `json:"quiet"`
	Offline  bool `json:"offline"`
	Force    bool `json:"force"`
	Rollback bool `json:"rollback"`
	Script   bool `json:"script"`
	Doc      bool `json:"doc"`
}

// DefaultOptions returns Options with every default populated.
func DefaultOptions() Options {
	return Options{
		Version:   DefaultVersion,
		BinName:   DefaultBinName,
		Edition:   DefaultEdition,
		Toolchain: DefaultToolchain,
		Rollback:  true,
	}
}
