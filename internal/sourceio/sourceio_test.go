package sourceio

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

const sample = `<?xml version="1.0"?><TEI><text/></TEI>`

func TestLocalOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadAll(Local{}, path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != sample {
		t.Errorf("content = %q, want %q", data, sample)
	}
}

func TestLocalOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sample)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := ReadAll(Local{}, path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != sample {
		t.Errorf("content = %q, want %q", data, sample)
	}
}

func TestLocalOpenXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	xzw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xzw.Write([]byte(sample)); err != nil {
		t.Fatal(err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := ReadAll(Local{}, path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != sample {
		t.Errorf("content = %q, want %q", data, sample)
	}
}

func TestLocalOpenMissing(t *testing.T) {
	_, err := Local{}.Open(filepath.Join(t.TempDir(), "absent.xml"))
	if err == nil {
		t.Error("Open should fail for a missing file")
	}
}

func TestLocalOpenBadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Local{}).Open(path); err == nil {
		t.Error("Open should fail for a corrupt gzip file")
	}
}
