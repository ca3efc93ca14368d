package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestExtractBytes_PlainText(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("Jane Doe\njane@example.com"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Jane Doe\njane@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_InvalidUTF8Dropped(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte{'J', 'a', 'n', 'e', 0xff, 0xfe, '!'}, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Jane!" {
		t.Errorf("got %q, want invalid bytes dropped", got)
	}
}

func TestExtractBytes_UnknownExtensionIsPlain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("hello"), ".resume")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

// buildDocx assembles a minimal .docx archive in memory with the given
// document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	contentTypes := `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`
	for name, body := range map[string]string{
		"[Content_Types].xml": contentTypes,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractBytes_DocxParagraphsAndTables(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Skills</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	e := NewExtractor()
	got, err := e.ExtractBytes(buildDocx(t, docXML), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if lines[0] != "Jane Doe" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "Senior Engineer" {
		t.Errorf("line 1 = %q, want runs joined into one paragraph", lines[1])
	}
	if lines[2] != "Skills | Python" {
		t.Errorf("line 2 = %q, want table cells joined with pipe", lines[2])
	}
}

func TestExtractBytes_DocxNotAZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("definitely not a zip"), ".docx"); err == nil {
		t.Fatal("expected an error for non-zip content")
	}
}

func TestExtractBytes_DocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/other.xml")
	_, _ = w.Write([]byte("<x/>"))
	_ = zw.Close()

	e := NewExtractor()
	if _, err := e.ExtractBytes(buf.Bytes(), ".docx"); err == nil {
		t.Fatal("expected an error when document.xml is absent")
	}
}
