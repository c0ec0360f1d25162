package manifest

import (
	"context"
	"strings"

	"github.com/beevik/etree"
	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.Parser = (*MavenParser)(nil)

// MavenParser parses pom.xml manifests. Dependencies are named
// "groupId:artifactId". Versions that use unresolved property placeholders
// are left empty and resolve with unknown confidence downstream.
type MavenParser struct{}

// NewMavenParser creates a new MavenParser.
func NewMavenParser() *MavenParser {
	return &MavenParser{}
}

// Ecosystem implements feluda.Parser.
func (p *MavenParser) Ecosystem() feluda.Ecosystem { return feluda.EcosystemMaven }

// Parse implements feluda.Parser.
func (p *MavenParser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(m.Path); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", m.Path, err)
	}

	project := doc.SelectElement("project")
	if project == nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: missing project element", m.Path)
	}

	// Simple ${property} interpolation from the properties block.
	properties := make(map[string]string)
	if props := project.SelectElement("properties"); props != nil {
		for _, child := range props.ChildElements() {
			properties[child.Tag] = strings.TrimSpace(child.Text())
		}
	}

	g := feluda.NewGraph()
	deps := project.SelectElement("dependencies")
	if deps == nil {
		return g, nil
	}

	for _, dep := range deps.SelectElements("dependency") {
		groupID := childText(dep, "groupId")
		artifactID := childText(dep, "artifactId")
		if groupID == "" || artifactID == "" {
			continue
		}

		version := resolveProperty(childText(dep, "version"), properties)
		g.AddNode(feluda.Dependency{
			Name:         groupID + ":" + artifactID,
			Version:      version,
			Ecosystem:    feluda.EcosystemMaven,
			Direct:       true,
			ManifestPath: m.Path,
		})
	}
	return g, nil
}

func childText(e *etree.Element, tag string) string {
	child := e.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// resolveProperty substitutes a ${name} placeholder from the properties
// block. Placeholders that cannot be resolved yield an empty version.
func resolveProperty(version string, properties map[string]string) string {
	if !strings.HasPrefix(version, "${") || !strings.HasSuffix(version, "}") {
		return version
	}
	name := version[2 : len(version)-1]
	return properties[name]
}
