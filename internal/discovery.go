package internal

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// Glob patterns, relative to a storage root, for the two on-disk schemas
const (
	chatSessionGlob    = "workspaceStorage/*/chatSessions/*.json"
	editingSessionGlob = "workspaceStorage/*/chatEditingSessions/*/state.json"
)

// discoveryWorkers bounds the number of files parsed concurrently within
// one root. Adapters are pure functions of a file path, so parsing in
// parallel is safe as long as results are reassembled in match order.
const discoveryWorkers = 4

// Discovery locates session files under storage roots and converts them
// to the canonical model via the schema adapters.
type Discovery struct {
	chatParser    SessionParser
	editingParser SessionParser
}

// NewDiscovery creates a Discovery with the default adapters
func NewDiscovery() *Discovery {
	return &Discovery{
		chatParser:    NewChatSessionParser(),
		editingParser: NewEditingSessionParser(),
	}
}

// matchedFile pairs a located file with the adapter its glob selected
type matchedFile struct {
	path   string
	parser SessionParser
}

// Discover parses every session file under a single storage root. The
// returned WorkspaceData lists sessions in match order: chat sessions
// first, then editing sessions. Per-file failures are logged and skipped;
// the only returned error is context cancellation.
func (d *Discovery) Discover(ctx context.Context, root string) (*WorkspaceData, error) {
	data := &WorkspaceData{
		Agent:         AgentLabel,
		WorkspacePath: root,
		Metadata:      map[string]any{"discovery_source": root},
	}

	var files []matchedFile
	for _, path := range globRoot(root, chatSessionGlob) {
		files = append(files, matchedFile{path: path, parser: d.chatParser})
	}
	for _, path := range globRoot(root, editingSessionGlob) {
		files = append(files, matchedFile{path: path, parser: d.editingParser})
	}

	sessions, err := parseAll(ctx, files)
	if err != nil {
		return data, err
	}
	data.ChatSessions = sessions

	LogInfo("Discovered %d chat sessions from %s", len(data.ChatSessions), root)
	return data, nil
}

// DiscoverAll parses session files across multiple storage roots in the
// given order and merges the results into one WorkspaceData. Roots that do
// not exist are skipped silently; zero total sessions is a valid result.
func (d *Discovery) DiscoverAll(ctx context.Context, roots []string) (*WorkspaceData, error) {
	merged := &WorkspaceData{
		Agent:    AgentLabel,
		Metadata: map[string]any{},
	}

	for _, root := range roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			LogDebug("Skipping unavailable root %s", root)
			continue
		}

		data, err := d.Discover(ctx, root)
		if err != nil {
			return merged, err
		}
		if len(data.ChatSessions) == 0 {
			continue
		}

		merged.ChatSessions = append(merged.ChatSessions, data.ChatSessions...)
		merged.WorkspacePath = root
		mergeMetadata(merged.Metadata, data.Metadata, filepath.Base(root))
	}

	if len(merged.ChatSessions) == 0 {
		LogWarn("No chat sessions found in any storage root")
	} else {
		LogInfo("Total discovered: %d chat sessions", len(merged.ChatSessions))
	}

	return merged, nil
}

// parseAll dispatches files to their adapters with a bounded worker pool,
// then collects non-nil sessions preserving match order. The context is
// checked between file reads so long scans can be cancelled externally.
func parseAll(ctx context.Context, files []matchedFile) ([]*ChatSession, error) {
	results := make([]*ChatSession, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := discoveryWorkers
	if len(files) < workers {
		workers = len(files)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = files[i].parser.Parse(files[i].path)
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break dispatch
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var sessions []*ChatSession
	for _, session := range results {
		if session != nil {
			sessions = append(sessions, session)
		}
	}
	return sessions, ctxErr
}

// mergeMetadata merges src into dst key-by-key. New keys are copied; when
// both values are sequences the existing one is extended; on any other
// conflict the existing value is preserved and the incoming value is
// stored under "<key>_<rootBase>" so nothing is lost silently.
func mergeMetadata(dst, src map[string]any, rootBase string) {
	for key, value := range src {
		existing, ok := dst[key]
		if !ok {
			dst[key] = value
			continue
		}

		existingList, existingIsList := existing.([]any)
		incomingList, incomingIsList := value.([]any)
		if existingIsList && incomingIsList {
			dst[key] = append(existingList, incomingList...)
			continue
		}

		dst[key+"_"+rootBase] = value
	}
}

// globRoot matches pattern under root, returning absolute paths. Glob
// errors only occur for malformed patterns, so a nil result doubles as
// "root not present".
func globRoot(root, pattern string) []string {
	matches, err := filepath.Glob(filepath.Join(root, pattern))
	if err != nil {
		LogWarn("Bad glob pattern %s: %v", pattern, err)
		return nil
	}
	return matches
}
