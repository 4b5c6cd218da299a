package dependency

// Default baseline specs added to every generated crate.
const (
	SerdeSpec = "serde -Fderive"
	ClapSpec  = "clap -Fderive,env,string,unicode,wrap_help"
)

// Baseline returns the dependencies every crate receives. serde is always
// present; clap is added when the crate ships a command line. Custom specs
// from the user's config replace serde, clap is still appended when needed.
func Baseline(withCLI bool, custom []string) ([]*Descriptor, error) {
	specs := custom
	if len(specs) == 0 {
		specs = []string{SerdeSpec}
	}
	out, err := ParseAll(specs)
	if err != nil {
		return nil, err
	}
	if withCLI && !contains(out, "clap") {
		clap, err := Parse(ClapSpec)
		if err != nil {
			return nil, err
		}
		out = append(out, clap)
	}
	return out, nil
}

func contains(deps []*Descriptor, name string) bool {
	for _, d := range deps {
		if d.Name == name {
			return true
		}
	}
	return false
}
