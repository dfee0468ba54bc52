package forme

import (
	"encoding/json"
	"fmt"

	"github.com/danmolitor/forme/internal/model"
)

var validKinds = map[model.Kind]bool{
	model.KindPage:      true,
	model.KindView:      true,
	model.KindText:      true,
	model.KindImage:     true,
	model.KindTable:     true,
	model.KindTableRow:  true,
	model.KindTableCell: true,
	model.KindFixed:     true,
	model.KindPageBreak: true,
	model.KindSvg:       true,
}

// ParseDocument decodes the JSON document schema in spec.md section 6 into
// a Document, validating that every node's "type" is one this module
// understands. Malformed JSON or an unknown node kind returns a
// *ParseError, per spec.md section 7 — no partial document is returned.
func ParseDocument(data []byte) (*Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Context: "document", Err: err}
	}
	for _, child := range doc.Children {
		if err := validateNode(child); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func validateNode(n *model.Node) error {
	if n == nil {
		return &ParseError{Context: "node", Err: fmt.Errorf("nil node")}
	}
	if !validKinds[n.Kind] {
		return &ParseError{Context: "node", Err: fmt.Errorf("unknown node kind %q", n.Kind)}
	}
	for _, child := range n.Children {
		if err := validateNode(child); err != nil {
			return err
		}
	}
	return nil
}
