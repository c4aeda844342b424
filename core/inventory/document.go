package inventory

import (
	"io"
	"path/filepath"

	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
	"github.com/mhartwick/ctskit/internal/logging"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// Document is the addressable unit behind an edition or translation: the
// logical name it is stored under, the physical path derived from it by the
// rewrite rules, the schema it validates against, its namespace table, and
// the root of its citation scheme.
type Document struct {
	// DB is the raw docname, the logical name in the backing store.
	DB string
	// Path is DB with the rewrite rules applied. Equals DB when no rule
	// matches.
	Path     string
	Filename string
	// Schema identifies the schema referenced by the validate element.
	Schema     string
	Namespaces Namespaces
	// Citation is the root of the citation chain, nil only when the
	// mapping was absent and construction was lenient.
	Citation *Citation

	strict bool
	opener sourceio.Opener
}

// parseDocument builds a Document from an <online> element.
func parseDocument(online *xml.Node, rules RewriteRules, strict bool, opener sourceio.Opener) (*Document, error) {
	d := &Document{
		DB:     online.Attr("docname"),
		strict: strict,
		opener: opener,
	}
	d.Path = rules.Apply(d.DB)
	d.Filename = filepath.Base(d.Path)

	if validate := ctsChild(online, "validate"); validate != nil {
		d.Schema = validate.Attr("schema")
	} else {
		if strict {
			return nil, errors.NewMissingAttribute("online", "validate")
		}
		logging.Warn("document has no validate element", "docname", d.DB)
	}

	d.Namespaces = Namespaces{}
	for _, mapping := range ctsChildren(online, "namespaceMapping") {
		d.Namespaces[mapping.Attr("abbreviation")+":"] = "{" + mapping.Attr("nsURI") + "}"
	}

	mapping := ctsChild(online, "citationMapping")
	root := ctsChild(mapping, "citation")
	if root == nil {
		if strict {
			return nil, errors.NewMissingAttribute("online", "citationMapping")
		}
		logging.Warn("document has no citation mapping", "docname", d.DB)
	} else {
		d.Citation = parseCitation(root, d.Namespaces, strict)
	}

	return d, nil
}

// Content returns the raw bytes behind the resolved path. In lenient mode a
// failed read is logged and reported as no content at all; in strict mode
// the underlying I/O error propagates.
func (d *Document) Content() ([]byte, error) {
	rc, err := d.opener.Open(d.Path)
	if err != nil {
		if d.strict {
			return nil, errors.NewIO("open", d.Path, err)
		}
		logging.Error("document file does not exist or cannot be opened", "path", d.Path)
		return nil, nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		if d.strict {
			return nil, errors.NewIO("read", d.Path, err)
		}
		logging.Error("document file cannot be read", "path", d.Path)
		return nil, nil
	}
	return data, nil
}

// TestCitation verifies the document's citation scheme against its own
// content. Missing content or a missing scheme degrade to a single false
// status in lenient mode.
func (d *Document) TestCitation() (Result, error) {
	if d.Citation == nil {
		return Result{Status: []bool{false}}, nil
	}
	content, err := d.Content()
	if err != nil {
		return Result{}, err
	}
	if content == nil {
		// No readable content behind the path; the report should say why
		// the level failed, not just that it did.
		return Result{
			Status:   []bool{false},
			Warnings: []Warning{{Code: WarnParse, Message: "impossible to parse given target"}},
		}, nil
	}
	return d.Citation.Test(content)
}
