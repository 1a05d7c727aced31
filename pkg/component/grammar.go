package component

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DocumentParent is the parent name used for nodes sitting directly
// under the fragment root.
const DocumentParent = "[document]"

// Format selects one of the two editor-generation grammars.
type Format string

const (
	FormatTextAngular Format = "textangular"
	FormatCKEditor    Format = "ckeditor"
)

// Grammar is one format's tag allowlist plus the parents each tag may
// appear under. Tables are immutable after load and safe for
// concurrent readers.
type Grammar struct {
	AllowedTags    map[string]bool
	AllowedParents map[string]map[string]bool
}

// ParentAllowed reports whether parent may directly contain tag.
func (g *Grammar) ParentAllowed(tag, parent string) bool {
	return g.AllowedParents[tag][parent]
}

type grammarFile struct {
	Formats map[string]grammarEntry `yaml:"formats"`
}

type grammarEntry struct {
	AllowedTags    []string            `yaml:"allowed_tags"`
	AllowedParents map[string][]string `yaml:"allowed_parents"`
}

//go:embed grammar.yaml
var rawGrammar []byte

var grammars = func() map[string]*Grammar {
	g, err := ParseGrammars(rawGrammar)
	if err != nil {
		panic(fmt.Sprintf("component: embedded grammar.yaml: %v", err))
	}
	return g
}()

// GrammarFor returns the built-in grammar for a format.
func GrammarFor(f Format) (*Grammar, error) {
	g, ok := grammars[string(f)]
	if !ok {
		return nil, fmt.Errorf("unknown rte format: %s", f)
	}
	return g, nil
}

// ParseGrammars reads grammar tables in the embedded file's layout.
// Deployments with a different editor vocabulary load their own tables
// and pass the resulting Grammar values to the validators directly.
func ParseGrammars(data []byte) (map[string]*Grammar, error) {
	var file grammarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing grammar config: %w", err)
	}
	if len(file.Formats) == 0 {
		return nil, fmt.Errorf("grammar config declares no formats")
	}
	out := make(map[string]*Grammar, len(file.Formats))
	for name, entry := range file.Formats {
		g := &Grammar{
			AllowedTags:    make(map[string]bool, len(entry.AllowedTags)),
			AllowedParents: make(map[string]map[string]bool, len(entry.AllowedParents)),
		}
		for _, tag := range entry.AllowedTags {
			g.AllowedTags[tag] = true
		}
		for tag, parents := range entry.AllowedParents {
			set := make(map[string]bool, len(parents))
			for _, p := range parents {
				set[p] = true
			}
			g.AllowedParents[tag] = set
		}
		for tag := range g.AllowedTags {
			if _, ok := g.AllowedParents[tag]; !ok {
				return nil, fmt.Errorf("grammar %s: tag %s has no allowed_parents entry", name, tag)
			}
		}
		out[name] = g
	}
	return out, nil
}

// LoadGrammarFile reads grammar tables from a YAML file on disk.
func LoadGrammarFile(path string) (map[string]*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar config: %w", err)
	}
	return ParseGrammars(data)
}
