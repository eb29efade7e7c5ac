package export

import (
	"encoding/csv"
	"io"
)

// CSVExporter flattens the workspace into one row per message
type CSVExporter struct{}

var csvHeader = []string{
	"session_id",
	"agent",
	"session_timestamp",
	"workspace",
	"message_id",
	"role",
	"message_timestamp",
	"content",
}

// Export writes the document as CSV, one row per message. Sessions with
// no messages still contribute a single row with empty message columns so
// they remain visible in the table.
func (e *CSVExporter) Export(doc *Document, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, raw := range getList(doc.ChatData, "chat_sessions") {
		session, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		sessionCols := []string{
			getString(session, "session_id"),
			getString(session, "agent"),
			getString(session, "timestamp"),
			getString(session, "workspace"),
		}

		messages := getList(session, "messages")
		if len(messages) == 0 {
			if err := cw.Write(append(sessionCols, "", "", "", "")); err != nil {
				return err
			}
			continue
		}

		for _, rawMsg := range messages {
			message, ok := rawMsg.(map[string]any)
			if !ok {
				continue
			}
			row := append(append([]string{}, sessionCols...),
				getString(message, "id"),
				getString(message, "role"),
				getString(message, "timestamp"),
				getString(message, "content"),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
