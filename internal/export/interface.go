package export

import (
	"fmt"
	"io"

	"github.com/iksnae/codehist/internal"
)

// Document is the export interchange shape. ChatData holds the workspace
// in its ToDict form; Statistics and SearchResults are attached alongside
// under sibling keys when produced.
type Document struct {
	ChatData      map[string]any
	Statistics    map[string]any
	SearchResults []map[string]any
}

// BuildDocument assembles a Document from the normalized model. results
// may be nil when no search was run; the search_results key is then
// omitted entirely.
func BuildDocument(data *internal.WorkspaceData, stats *internal.Stats, results []internal.SearchResult) *Document {
	doc := &Document{
		ChatData:   data.ToDict(),
		Statistics: stats.ToDict(),
	}
	if results != nil {
		doc.SearchResults = make([]map[string]any, 0, len(results))
		for i := range results {
			doc.SearchResults = append(doc.SearchResults, results[i].ToDict())
		}
	}
	return doc
}

// ToDict renders the full document mapping handed to encoders
func (d *Document) ToDict() map[string]any {
	out := map[string]any{
		"chat_data":  d.ChatData,
		"statistics": d.Statistics,
	}
	if d.SearchResults != nil {
		results := make([]any, 0, len(d.SearchResults))
		for _, r := range d.SearchResults {
			results = append(results, r)
		}
		out["search_results"] = results
	}
	return out
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "csv":
		return &CSVExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, md, csv, yaml)", format)
	}
}

// Mapping accessors used by the sinks. Everything arrives through the
// ToDict contract, so values are read defensively from generic maps.

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func getInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func getMap(m map[string]any, key string) map[string]any {
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return map[string]any{}
}

func getList(m map[string]any, key string) []any {
	if list, ok := m[key].([]any); ok {
		return list
	}
	return nil
}
