package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/emirpasha/vidshare/pkg/logger"
	"go.uber.org/zap"
)

// Entry is one engagement action recorded before it is published or persisted.
type Entry struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"` // "comment" or "like"
	VideoID   uint64    `json:"video_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Journal is an append-only, fsynced JSON-lines log of engagement events.
// Entries are removed once their database writes are confirmed, so anything
// left after a crash identifies engagement that may not have been persisted.
type Journal struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

func New(filePath string) (*Journal, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Journal{
		filePath: filePath,
		file:     file,
	}, nil
}

// Write appends an entry and syncs it to disk.
func (j *Journal) Write(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Error("journal: failed to marshal entry",
			zap.String("event_id", entry.EventID),
			zap.Error(err),
		)
		return err
	}

	if _, err := j.file.WriteString(string(data) + "\n"); err != nil {
		logger.Log.Error("journal: failed to write entry",
			zap.String("event_id", entry.EventID),
			zap.Error(err),
		)
		return err
	}

	if err := j.file.Sync(); err != nil {
		logger.Log.Error("journal: failed to sync to disk",
			zap.String("event_id", entry.EventID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// ReadAll returns every entry currently in the journal.
func (j *Journal) ReadAll() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.readAllUnsafe()
}

// Cleanup removes entries whose events have been confirmed persisted.
func (j *Journal) Cleanup(persistedIDs []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	allEntries, err := j.readAllUnsafe()
	if err != nil {
		return err
	}

	persisted := make(map[string]bool, len(persistedIDs))
	for _, id := range persistedIDs {
		persisted[id] = true
	}

	var remaining []Entry
	for _, entry := range allEntries {
		if !persisted[entry.EventID] {
			remaining = append(remaining, entry)
		}
	}

	if err := j.file.Close(); err != nil {
		return err
	}

	// Rewrite the journal with only the remaining entries, then swap it in
	// atomically.
	tempFile := j.filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	for _, entry := range remaining {
		data, _ := json.Marshal(entry)
		f.WriteString(string(data) + "\n")
	}

	f.Sync()
	f.Close()

	if err := os.Rename(tempFile, j.filePath); err != nil {
		return err
	}

	// Reopen with the same flags so later writes keep appending.
	newFile, err := os.OpenFile(j.filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		logger.Log.Error("journal: failed to reopen file after cleanup",
			zap.String("file_path", j.filePath),
			zap.Error(err),
		)
		return err
	}
	j.file = newFile

	logger.Log.Debug("journal: cleanup completed",
		zap.Int("before_count", len(allEntries)),
		zap.Int("remaining_count", len(remaining)),
	)

	return nil
}

func (j *Journal) readAllUnsafe() ([]Entry, error) {
	file, err := os.Open(j.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
