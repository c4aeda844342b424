package inventory

import (
	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
	"github.com/mhartwick/ctskit/internal/logging"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// TextGroup is an authorial or collection grouping of works, usually one
// author.
type TextGroup struct {
	ID    string
	Name  string
	Works []*Work
}

// parseTextGroup builds a TextGroup from a <textgroup> element.
func parseTextGroup(node *xml.Node, rules RewriteRules, strict bool, opener sourceio.Opener) (*TextGroup, error) {
	g := &TextGroup{
		ID: node.Attr("projid"),
	}

	if name := ctsChild(node, "groupname"); name != nil {
		g.Name = name.Text()
	} else {
		if strict {
			return nil, errors.NewMissingAttribute("textgroup", "groupname")
		}
		logging.Warn("textgroup has no groupname", "projid", g.ID)
	}

	for _, node := range ctsChildren(node, "work") {
		work, err := parseWork(node, rules, strict, opener)
		if err != nil {
			return nil, err
		}
		g.Works = append(g.Works, work)
	}

	return g, nil
}

// GetID returns the identifier of the text group.
func (g *TextGroup) GetID() string {
	return g.ID
}

// GetName returns the display name of the text group.
func (g *TextGroup) GetName() string {
	return g.Name
}
