package inventory

import (
	"testing"

	"github.com/mhartwick/ctskit/core/errors"
	"github.com/mhartwick/ctskit/core/xml"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// parseWorkFragment builds a Work from a <work> fragment.
func parseWorkFragment(t *testing.T, markup string, strict bool) (*Work, error) {
	t.Helper()
	doc, err := xml.Parse([]byte(markup))
	if err != nil {
		t.Fatalf("parse work fragment: %v", err)
	}
	return parseWork(doc.Root(), nil, strict, sourceio.Local{})
}

func TestWorkGetTitle(t *testing.T) {
	markup := `<work xmlns="http://chs.harvard.edu/xmlns/cts3/ti" projid="tlg0012.tlg001">
	<title xml:lang="en">A</title>
	<title xml:lang="fr">B</title>
</work>`
	w, err := parseWorkFragment(t, markup, false)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		lang string
		want string
	}{
		{"fr", "B"},
		{"en", "A"},
		{"de", "A"}, // unknown language falls back to en
		{"", "A"},   // unspecified language falls back to en
	}
	for _, tt := range tests {
		got, err := w.GetTitle(tt.lang)
		if err != nil {
			t.Errorf("GetTitle(%q) failed: %v", tt.lang, err)
			continue
		}
		if got != tt.want {
			t.Errorf("GetTitle(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestWorkGetTitleEngFallback(t *testing.T) {
	markup := `<work xmlns="http://chs.harvard.edu/xmlns/cts3/ti" projid="tlg0012.tlg001">
	<title xml:lang="fr">B</title>
	<title xml:lang="eng">E</title>
</work>`
	w, err := parseWorkFragment(t, markup, false)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := w.GetTitle("de"); got != "E" {
		t.Errorf("GetTitle(de) = %q, want eng fallback E", got)
	}
}

func TestWorkGetTitleFirstInOrder(t *testing.T) {
	// No en or eng title: the first title in document order wins.
	markup := `<work xmlns="http://chs.harvard.edu/xmlns/cts3/ti" projid="tlg0012.tlg001">
	<title xml:lang="fr">B</title>
	<title xml:lang="de">C</title>
</work>`
	w, err := parseWorkFragment(t, markup, false)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := w.GetTitle("xx"); got != "B" {
		t.Errorf("GetTitle(xx) = %q, want first-in-order B", got)
	}
}

func TestWorkNoTitles(t *testing.T) {
	markup := `<work xmlns="http://chs.harvard.edu/xmlns/cts3/ti" projid="tlg0012.tlg001"/>`

	t.Run("strict fails at construction", func(t *testing.T) {
		_, err := parseWorkFragment(t, markup, true)
		if !errors.Is(err, errors.ErrNoTitle) {
			t.Errorf("strict parse should fail with ErrNoTitle, got %v", err)
		}
	})

	t.Run("lenient fails at lookup", func(t *testing.T) {
		w, err := parseWorkFragment(t, markup, false)
		if err != nil {
			t.Fatalf("lenient parse should succeed: %v", err)
		}
		if _, err := w.GetTitle(""); !errors.Is(err, errors.ErrNoTitle) {
			t.Errorf("GetTitle should fail with ErrNoTitle, got %v", err)
		}
	})
}

func TestWorkGetTexts(t *testing.T) {
	markup := `<work xmlns="http://chs.harvard.edu/xmlns/cts3/ti" projid="tlg0012.tlg001">
	<title xml:lang="en">Iliad</title>
	<translation projid="tlg0012.tlg001.perseus-eng1">
		<label xml:lang="en">The Iliad</label>
		<online docname="iliad-eng.xml">
			<validate schema="tei.rng"/>
			<citationMapping>
				<citation label="book" xpath="/tei:div[@n='?']" scope="/tei:TEI/tei:text/tei:body"/>
			</citationMapping>
		</online>
	</translation>
	<edition projid="tlg0012.tlg001.perseus-grc1">
		<label xml:lang="grc">Ilias</label>
		<online docname="iliad-grc.xml">
			<validate schema="tei.rng"/>
			<citationMapping>
				<citation label="book" xpath="/tei:div[@n='?']" scope="/tei:TEI/tei:text/tei:body"/>
			</citationMapping>
		</online>
	</edition>
</work>`
	w, err := parseWorkFragment(t, markup, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(w.Editions) != 1 || len(w.Translations) != 1 {
		t.Fatalf("editions = %d, translations = %d", len(w.Editions), len(w.Translations))
	}

	texts := w.GetTexts()
	if len(texts) != 2 {
		t.Fatalf("GetTexts() = %d texts, want 2", len(texts))
	}
	// Editions come first even when the translation precedes in the XML.
	if texts[0].Kind != KindEdition {
		t.Errorf("texts[0].Kind = %v, want edition", texts[0].Kind)
	}
	if texts[1].Kind != KindTranslation {
		t.Errorf("texts[1].Kind = %v, want translation", texts[1].Kind)
	}
}
