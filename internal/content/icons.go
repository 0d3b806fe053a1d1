package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Icon names a glyph. Records carry the name only; the web layer decides how an
// icon is drawn.
type Icon string

var knownIcons = map[Icon]bool{}

func init() {
	for _, name := range []Icon{
		"balance-scale", "bell", "blog", "book", "book-reader", "brain", "briefcase",
		"bullhorn", "calculator", "chart-area", "chart-bar", "chart-line", "chart-pie",
		"clipboard-list", "code", "css3", "database", "download", "envelope", "facebook",
		"file-alt", "file-invoice-dollar", "flask", "folder", "github", "graduation-cap",
		"handshake", "home", "html5", "js-square", "laptop-code", "lightbulb", "link",
		"linkedin", "map-marker", "microscope", "nodejs", "pencil-ruler", "phone",
		"python", "question-circle", "react", "reg-lightbulb", "researchgate", "toolbox",
		"tools", "twitter", "university", "whatsapp",
	} {
		knownIcons[name] = true
	}
}

func (i Icon) Valid() bool { return knownIcons[i] }

// UnmarshalYAML rejects unknown icon names at load time.
func (i *Icon) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	if !Icon(s).Valid() {
		return fmt.Errorf("line %d: unknown icon %q", n.Line, s)
	}
	*i = Icon(s)
	return nil
}

// ResourceIcon picks the glyph for a resource type.
func ResourceIcon(kind string) Icon {
	switch strings.ToLower(kind) {
	case "book":
		return "book"
	case "tool":
		return "tools"
	case "course":
		return "graduation-cap"
	case "article", "website":
		return "link"
	}
	return "lightbulb"
}
