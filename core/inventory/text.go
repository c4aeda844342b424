package inventory

import (
	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
	"github.com/mhartwick/ctskit/internal/logging"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// TextKind distinguishes the two text variants a work can carry. Editions
// and translations are structurally identical; only their source tag and
// the list they belong to differ.
type TextKind int

const (
	// KindEdition is a text in its original language.
	KindEdition TextKind = iota
	// KindTranslation is a translated text.
	KindTranslation
)

func (k TextKind) String() string {
	switch k {
	case KindEdition:
		return "edition"
	case KindTranslation:
		return "translation"
	default:
		return "unknown"
	}
}

// sourceTag returns the inventory element name for this kind.
func (k TextKind) sourceTag() string {
	if k == KindTranslation {
		return "translation"
	}
	return "edition"
}

// Text is a titled text variant of a work, wrapping the document that holds
// its content. Unlike Work titles, the default title carries no language
// preference: it is simply the first one in document order.
type Text struct {
	Kind   TextKind
	ID     string
	Titles map[string]string
	// Document is nil only when the online element was absent and
	// construction was lenient.
	Document *Document

	titleOrder []string
}

// parseText builds a Text of the given kind from an <edition> or
// <translation> element.
func parseText(node *xml.Node, kind TextKind, rules RewriteRules, strict bool, opener sourceio.Opener) (*Text, error) {
	t := &Text{
		Kind:   kind,
		ID:     node.Attr("projid"),
		Titles: map[string]string{},
	}

	for _, label := range ctsChildren(node, "label") {
		lang := label.Attr("lang")
		if _, seen := t.Titles[lang]; !seen {
			t.titleOrder = append(t.titleOrder, lang)
		}
		t.Titles[lang] = label.Text()
	}
	if strict && len(t.Titles) == 0 {
		return nil, errors.NewNoTitle(t.ID)
	}

	if online := ctsChild(node, "online"); online != nil {
		doc, err := parseDocument(online, rules, strict, opener)
		if err != nil {
			return nil, err
		}
		t.Document = doc
	} else {
		if strict {
			return nil, errors.NewMissingAttribute(kind.sourceTag(), "online")
		}
		logging.DocumentSkipped(t.ID, "no online element")
	}

	return t, nil
}

// GetTitle returns the title in the given language when available, falling
// back to the first title in document order. An empty lang requests the
// default directly. A text with no titles at all fails with NoTitleError
// regardless of lang.
func (t *Text) GetTitle(lang string) (string, error) {
	if len(t.Titles) == 0 {
		return "", errors.NewNoTitle(t.ID)
	}
	if title, ok := t.Titles[lang]; ok && lang != "" {
		return title, nil
	}
	return t.Titles[t.titleOrder[0]], nil
}
