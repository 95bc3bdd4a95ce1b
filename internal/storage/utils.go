package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bandwatch/internal/models"
)

// baselineDocument is the serialized form used by the file and object stores
type baselineDocument struct {
	Values    map[models.Metric]int `json:"values"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func newBaselineDocument() *baselineDocument {
	return &baselineDocument{Values: make(map[models.Metric]int)}
}

func decodeBaselineDocument(data []byte) (*baselineDocument, error) {
	doc := newBaselineDocument()
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode baseline document: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[models.Metric]int)
	}
	return doc, nil
}

func (d *baselineDocument) get(metric models.Metric) models.Reading[int] {
	v, ok := d.Values[metric]
	if !ok {
		return models.Unknown[int]()
	}
	return models.Known(v)
}

func (d *baselineDocument) encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode baseline document: %w", err)
	}
	return data, nil
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "application/json"
	}
	return "application/octet-stream"
}
