// Package inventory models a digital-library corpus description: text
// groups, works, their editions and translations, and each document's
// citation scheme. The whole tree is built once from the inventory XML and
// is read-only afterwards, so concurrent read traversal is safe.
package inventory

import (
	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
	"github.com/mhartwick/ctskit/internal/logging"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// Options configures inventory construction. Strictness and rewrite rules
// are fixed here once and inherited by the entire subtree.
type Options struct {
	// Rules are the corpus-wide rewrite rules mapping logical document
	// names to physical paths.
	Rules RewriteRules
	// Strict makes non-conformant input fatal at construction instead of
	// a recorded warning plus best-effort continuation.
	Strict bool
	// Opener resolves document paths to byte streams. Defaults to the
	// local filesystem.
	Opener sourceio.Opener
}

// Inventory is the corpus root: every text group reachable from one
// inventory source, plus the rewrite rules and strictness policy applied
// uniformly underneath.
type Inventory struct {
	Rules  RewriteRules
	Groups []*TextGroup

	strict bool
}

// TextResult pairs one text's document with the outcome of testing its
// citation scheme.
type TextResult struct {
	Filename string
	Path     string
	Result   Result
}

// New parses the inventory source once and builds the full tree. source may
// be raw markup ([]byte or string), a file path, or an already parsed
// *xml.Document. A source that cannot be parsed is always fatal; malformed
// entries below it follow the strictness policy.
func New(source any, opts Options) (*Inventory, error) {
	opener := opts.Opener
	if opener == nil {
		opener = sourceio.Local{}
	}

	doc, err := xml.Resolve(source)
	if err != nil {
		return nil, errors.NewParse("inventory", "", err.Error())
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.NewParse("inventory", "", "source has no root element")
	}

	inv := &Inventory{
		Rules:  opts.Rules,
		strict: opts.Strict,
	}
	for _, node := range ctsChildren(root, "textgroup") {
		group, err := parseTextGroup(node, opts.Rules, opts.Strict, opener)
		if err != nil {
			return nil, err
		}
		inv.Groups = append(inv.Groups, group)
	}

	works := 0
	for _, g := range inv.Groups {
		works += len(g.Works)
	}
	logging.InventoryLoaded(len(inv.Groups), works, len(inv.GetTexts()))

	return inv, nil
}

// GetTexts flattens every text reachable from the inventory, in traversal
// order: text group order, then work order, then editions before
// translations. With no kinds given, both kinds are returned.
func (inv *Inventory) GetTexts(kinds ...TextKind) []*Text {
	wantEditions, wantTranslations := true, true
	if len(kinds) > 0 {
		wantEditions, wantTranslations = false, false
		for _, k := range kinds {
			switch k {
			case KindEdition:
				wantEditions = true
			case KindTranslation:
				wantTranslations = true
			}
		}
	}

	var texts []*Text
	for _, group := range inv.Groups {
		for _, work := range group.Works {
			if wantEditions {
				texts = append(texts, work.Editions...)
			}
			if wantTranslations {
				texts = append(texts, work.Translations...)
			}
		}
	}
	return texts
}

// TestTextsCitation tests the citation scheme of every text's document
// against its resolved file, preserving traversal order. ignoreReplication
// is reserved for a future structural replication check and currently has
// no effect.
//
// In lenient mode the run always completes and every document gets a
// result; in strict mode the first fatal failure aborts it.
func (inv *Inventory) TestTextsCitation(ignoreReplication bool) ([]TextResult, error) {
	_ = ignoreReplication

	var results []TextResult
	for _, text := range inv.GetTexts() {
		doc := text.Document
		if doc == nil {
			logging.DocumentSkipped(text.ID, "no document")
			continue
		}
		res, err := doc.TestCitation()
		if err != nil {
			return nil, err
		}
		logging.CitationTest(doc.Filename, res.Passed(), len(res.Status))
		results = append(results, TextResult{
			Filename: doc.Filename,
			Path:     doc.Path,
			Result:   res,
		})
	}
	return results, nil
}
