package export

import (
	"encoding/json"
	"io"
)

// JSONExporter exports the full document in JSON format (pretty-printed)
type JSONExporter struct{}

// Export writes the document to JSON
func (e *JSONExporter) Export(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc.ToDict())
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
