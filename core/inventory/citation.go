package inventory

import (
	"fmt"

	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
)

// Citation is a single level of a citation scheme: a label ("book", "line"),
// the relative path expression locating this level's nodes, and the scope
// expression fixing where the level sits in the document. Child points at
// the next, finer granularity; the chain is read-only after construction.
type Citation struct {
	Label string
	XPath string
	Scope string
	Child *Citation

	namespaces Namespaces
	strict     bool
}

// parseCitation builds the citation chain from a <citation> element. Each
// nested <citation> becomes the child of the level above it.
func parseCitation(node *xml.Node, namespaces Namespaces, strict bool) *Citation {
	c := &Citation{
		Label:      node.Attr("label"),
		XPath:      node.Attr("xpath"),
		Scope:      node.Attr("scope"),
		namespaces: namespaces,
		strict:     strict,
	}
	if child := ctsChild(node, "citation"); child != nil {
		c.Child = parseCitation(child, namespaces, strict)
	}
	return c
}

// Depth returns the number of levels in the chain, this one included.
func (c *Citation) Depth() int {
	depth := 0
	for cur := c; cur != nil; cur = cur.Child {
		depth++
	}
	return depth
}

// FullPath returns the fully namespace-resolved path expression for this
// level (scope + xpath). With removeRoot the addressing root is replaced by
// the current-node marker, for evaluation relative to an already-located
// context node. Pure derivation from immutable fields.
func (c *Citation) FullPath(removeRoot bool) string {
	return c.namespaces.resolveExpr(c.Scope+c.XPath, removeRoot)
}

// FullPathFrom resolves an arbitrary expression through this level's
// namespace table instead of the default scope + xpath concatenation.
func (c *Citation) FullPathFrom(expr string, removeRoot bool) string {
	return c.namespaces.resolveExpr(expr, removeRoot)
}

// Test verifies this citation level and all descendants resolve against
// target. target may be nil, raw markup ([]byte or string), a file path, or
// an already parsed *xml.Document. The result carries one status boolean
// per level evaluated, in outer-to-inner order.
//
// In lenient mode every failure surfaces as status plus warnings and the
// returned error is always nil; in strict mode a parse failure of the
// target is fatal.
func (c *Citation) Test(target any) (Result, error) {
	return c.test(target, 1)
}

func (c *Citation) test(target any, level int) (Result, error) {
	var res Result

	var doc *xml.Document
	if !emptyTarget(target) {
		parsed, err := xml.Resolve(target)
		if err != nil {
			if c.strict {
				return Result{}, errors.NewParse("XML", "", err.Error())
			}
			res.Status = []bool{false}
			res.Warnings = []Warning{{Code: WarnParse, Message: "impossible to parse given target"}}
			return res, nil
		}
		doc = parsed
	}

	if doc != nil {
		var found []*xml.Node
		if root := doc.Root(); root != nil {
			matches, err := root.QueryAllNS(evalExpr(c.Scope+c.XPath, true), c.namespaces.bindings())
			if err != nil {
				res.Warnings = append(res.Warnings, Warning{
					Code:    WarnUnresolvablePath,
					Message: fmt.Sprintf("unable to run xpath %s", c.FullPath(true)),
				})
			} else {
				found = matches
			}
		}

		if len(found) > 0 {
			res.Status = append(res.Status, true)
		} else {
			res.Status = append(res.Status, false)
			// The diagnostic supersedes warnings accumulated for this
			// level: it explains why the match failed instead of
			// reporting the failure twice.
			res.Warnings = c.namespaceDiagnostics(level)
		}

		if c.Child != nil {
			child, err := c.Child.test(doc, level+1)
			if err != nil {
				return Result{}, err
			}
			res.Status = append(res.Status, child.Status...)
			res.Warnings = append(res.Warnings, child.Warnings...)
		}
	}

	if len(res.Status) == 0 {
		res.Status = []bool{false}
	}
	return res, nil
}

// namespaceDiagnostics inspects the raw scope and xpath strings for
// shortcut prefixes and, contrastively, the rewritten forms for shortcuts
// that never got a binding. Zero to four warnings; pure diagnostic text,
// never affects status.
func (c *Citation) namespaceDiagnostics(level int) []Warning {
	warns := c.checkShortcuts("scope", c.Scope, level)
	return append(warns, c.checkShortcuts("xpath", c.XPath, level)...)
}

func (c *Citation) checkShortcuts(name, raw string, level int) []Warning {
	var warns []Warning
	if !hasShortcut(raw) {
		warns = append(warns, Warning{
			Code:    WarnNoShortcuts,
			Message: fmt.Sprintf("%s attribute for citation level %d has no namespace shortcuts like 'tei:' (%s)", name, level, raw),
		})
	}
	if hasShortcut(c.namespaces.resolveExpr(raw, false)) {
		warns = append(warns, Warning{
			Code:    WarnUnboundShortcuts,
			Message: fmt.Sprintf("%s attribute for citation level %d has namespace shortcuts with no bindings (%s)", name, level, raw),
		})
	}
	return warns
}

// emptyTarget reports whether target denotes no content at all, as opposed
// to content that fails to parse.
func emptyTarget(target any) bool {
	switch v := target.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case *xml.Document:
		return v == nil
	default:
		return false
	}
}
