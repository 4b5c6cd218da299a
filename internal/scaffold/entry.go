package scaffold

import "strings"

const cargoPrefix = "cargo-"

// Entry is a single generated file target. Path is relative to the project
// root. The boolean flags mirror the Cargo target settings; false means the
// target is excluded from that step.
type Entry struct {
	Name    string
	Path    string
	Doctest bool
	Bench   bool
	Doc     bool
}

// BinaryEntry is an Entry for a [[bin]] target.
type BinaryEntry struct {
	Entry
	Index int

	// IsCargo is set for binaries named cargo-<subcommand>.
	IsCargo    bool
	Subcommand string
}

func newBinaryEntry(index int, name, path string) BinaryEntry {
	b := BinaryEntry{
		Entry: Entry{Name: name, Path: path},
		Index: index,
	}
	if sub, ok := strings.CutPrefix(name, cargoPrefix); ok {
		b.IsCargo = true
		b.Subcommand = sub
	}
	return b
}

// ContextMap is the template view of a library entry.
func (e Entry) ContextMap() map[string]any {
	return map[string]any{
		"name":    e.Name,
		"path":    e.Path,
		"doctest": e.Doctest,
		"bench":   e.Bench,
	}
}

// ContextMap is the template view of a binary entry.
func (b BinaryEntry) ContextMap() map[string]any {
	m := b.Entry.ContextMap()
	m["doc"] = b.Doc
	m["index"] = b.Index
	m["is_cargo"] = b.IsCargo
	m["subcommand"] = b.Subcommand
	return m
}
