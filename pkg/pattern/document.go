package pattern

import (
	"encoding/json"
	"fmt"
)

// Document is the plain interchange form used for file save/load. Unlike the
// share token it is fully self-describing: complete field names, no diffing,
// no version discriminator.
type Document struct {
	Sequences []Item `json:"sequences"`
	TimingMs  int    `json:"timingMs"`
}

// MarshalDocument serializes a collection into the interchange form.
func MarshalDocument(c *Collection) ([]byte, error) {
	doc := Document{Sequences: c.Items, TimingMs: c.TimingMs}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// UnmarshalDocument parses the interchange form into a collection. An empty
// sequence list is rejected; timing falls back to the default when absent.
func UnmarshalDocument(data []byte) (*Collection, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if len(doc.Sequences) == 0 {
		return nil, fmt.Errorf("document has no sequences")
	}
	if doc.TimingMs <= 0 {
		doc.TimingMs = DefaultTimingMs
	}
	return &Collection{Items: doc.Sequences, TimingMs: doc.TimingMs}, nil
}
