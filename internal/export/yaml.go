package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the full document in YAML format
type YAMLExporter struct{}

// Export writes the document to YAML
func (e *YAMLExporter) Export(doc *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc.ToDict())
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
