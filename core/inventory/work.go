package inventory

import (
	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// Work is a literary work inside a text group: multilingual titles plus the
// editions and translations that realize it.
type Work struct {
	ID           string
	Titles       map[string]string
	Editions     []*Text
	Translations []*Text

	titleOrder []string
}

// parseWork builds a Work from a <work> element.
func parseWork(node *xml.Node, rules RewriteRules, strict bool, opener sourceio.Opener) (*Work, error) {
	w := &Work{
		ID:     node.Attr("projid"),
		Titles: map[string]string{},
	}

	for _, title := range ctsChildren(node, "title") {
		lang := title.Attr("lang")
		if _, seen := w.Titles[lang]; !seen {
			w.titleOrder = append(w.titleOrder, lang)
		}
		w.Titles[lang] = title.Text()
	}
	if strict && len(w.Titles) == 0 {
		return nil, errors.NewNoTitle(w.ID)
	}

	for _, node := range ctsChildren(node, "edition") {
		edition, err := parseText(node, KindEdition, rules, strict, opener)
		if err != nil {
			return nil, err
		}
		w.Editions = append(w.Editions, edition)
	}
	for _, node := range ctsChildren(node, "translation") {
		translation, err := parseText(node, KindTranslation, rules, strict, opener)
		if err != nil {
			return nil, err
		}
		w.Translations = append(w.Translations, translation)
	}

	return w, nil
}

// GetTexts returns every text of this work, editions first, then
// translations, each list in document order.
func (w *Work) GetTexts() []*Text {
	texts := make([]*Text, 0, len(w.Editions)+len(w.Translations))
	texts = append(texts, w.Editions...)
	return append(texts, w.Translations...)
}

// GetTitle returns the title in the given language when available. The
// fallback prefers "en", then "eng", then the first title in document
// order; an empty lang requests the fallback directly. A work with no
// titles at all fails with NoTitleError regardless of lang.
func (w *Work) GetTitle(lang string) (string, error) {
	if len(w.Titles) == 0 {
		return "", errors.NewNoTitle(w.ID)
	}
	if title, ok := w.Titles[lang]; ok && lang != "" {
		return title, nil
	}
	if title, ok := w.Titles["en"]; ok {
		return title, nil
	}
	if title, ok := w.Titles["eng"]; ok {
		return title, nil
	}
	return w.Titles[w.titleOrder[0]], nil
}
