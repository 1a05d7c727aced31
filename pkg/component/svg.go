package component

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SVGAllowlist maps a lower-cased SVG element name to the set of
// lower-cased attribute names it may carry.
type SVGAllowlist map[string]map[string]bool

// AllowsElement reports whether the lower-cased element name is known.
func (a SVGAllowlist) AllowsElement(name string) bool {
	_, ok := a[name]
	return ok
}

// AllowsAttr reports whether the lower-cased element allows the
// lower-cased attribute.
func (a SVGAllowlist) AllowsAttr(element, attr string) bool {
	return a[element][attr]
}

type svgAllowlistFile struct {
	Elements map[string][]string `yaml:"elements"`
}

//go:embed svg_allowlist.yaml
var rawSVGAllowlist []byte

var svgAllowlist = func() SVGAllowlist {
	a, err := ParseSVGAllowlist(rawSVGAllowlist)
	if err != nil {
		panic(fmt.Sprintf("component: embedded svg_allowlist.yaml: %v", err))
	}
	return a
}()

// DefaultSVGAllowlist returns the built-in allowlist.
func DefaultSVGAllowlist() SVGAllowlist { return svgAllowlist }

// ParseSVGAllowlist reads an allowlist in the embedded file's layout.
func ParseSVGAllowlist(data []byte) (SVGAllowlist, error) {
	var file svgAllowlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing svg allowlist: %w", err)
	}
	if len(file.Elements) == 0 {
		return nil, fmt.Errorf("svg allowlist declares no elements")
	}
	out := make(SVGAllowlist, len(file.Elements))
	for element, attrs := range file.Elements {
		set := make(map[string]bool, len(attrs))
		for _, attr := range attrs {
			set[attr] = true
		}
		out[element] = set
	}
	return out, nil
}

// LoadSVGAllowlistFile reads an allowlist from a YAML file on disk.
func LoadSVGAllowlistFile(path string) (SVGAllowlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading svg allowlist: %w", err)
	}
	return ParseSVGAllowlist(data)
}
