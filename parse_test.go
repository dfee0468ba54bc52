package forme

import (
	"errors"
	"testing"
)

func TestParseDocumentValidTree(t *testing.T) {
	data := []byte(`{
		"defaultPage": {"size": {"name": "A4"}},
		"children": [
			{"type": "Page", "children": [
				{"type": "Text", "content": "hello"}
			]}
		]
	}`)
	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(doc.Children))
	}
	if doc.Children[0].Kind != KindPage {
		t.Fatalf("expected page kind, got %q", doc.Children[0].Kind)
	}
}

func TestParseDocumentMalformedJSON(t *testing.T) {
	_, err := ParseDocument([]byte(`{not json`))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v (%T)", err, err)
	}
}

func TestParseDocumentUnknownKind(t *testing.T) {
	data := []byte(`{
		"defaultPage": {"size": {"name": "A4"}},
		"children": [{"type": "bogus"}]
	}`)
	_, err := ParseDocument(data)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v (%T)", err, err)
	}
}

func TestParseDocumentRejectsNestedUnknownKind(t *testing.T) {
	data := []byte(`{
		"defaultPage": {"size": {"name": "A4"}},
		"children": [
			{"type": "Page", "children": [{"type": "nope"}]}
		]
	}`)
	_, err := ParseDocument(data)
	if err == nil {
		t.Fatalf("expected an error for a nested unknown kind")
	}
}
