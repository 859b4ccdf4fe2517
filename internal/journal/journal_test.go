package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/emirpasha/vidshare/pkg/logger"
)

func TestJournal_WriteAfterCleanup(t *testing.T) {
	logger.Init(false)

	tmpDir := t.TempDir()
	journalPath := filepath.Join(tmpDir, "test.journal")

	j, err := New(journalPath)
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	defer j.Close()

	// Step 1: record three engagement events
	entries := []Entry{
		{EventID: "evt1", Kind: "like", VideoID: 1, UserID: "user1", Timestamp: time.Now()},
		{EventID: "evt2", Kind: "comment", VideoID: 1, UserID: "user1", Timestamp: time.Now()},
		{EventID: "evt3", Kind: "like", VideoID: 2, UserID: "user2", Timestamp: time.Now()},
	}

	for _, entry := range entries {
		if err := j.Write(entry); err != nil {
			t.Fatalf("Failed to write entry: %v", err)
		}
	}

	allEntries, err := j.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read journal: %v", err)
	}
	if len(allEntries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(allEntries))
	}

	// Step 2: confirm the first two as persisted
	if err := j.Cleanup([]string{"evt1", "evt2"}); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	remaining, err := j.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read journal after cleanup: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 entry after cleanup, got %d", len(remaining))
	}
	if remaining[0].EventID != "evt3" {
		t.Fatalf("Expected evt3, got %s", remaining[0].EventID)
	}

	// Step 3: writes after cleanup must keep appending to the swapped-in file
	newEntries := []Entry{
		{EventID: "evt4", Kind: "like", VideoID: 3, UserID: "user3", Timestamp: time.Now()},
		{EventID: "evt5", Kind: "comment", VideoID: 3, UserID: "user3", Timestamp: time.Now()},
	}

	for _, entry := range newEntries {
		if err := j.Write(entry); err != nil {
			t.Fatalf("Failed to write after cleanup: %v", err)
		}
	}

	final, err := j.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read journal after new writes: %v", err)
	}
	if len(final) != 3 {
		t.Fatalf("Expected 3 entries after post-cleanup writes, got %d", len(final))
	}
}

func TestJournal_ReadAllEmpty(t *testing.T) {
	logger.Init(false)

	j, err := New(filepath.Join(t.TempDir(), "empty.journal"))
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	defer j.Close()

	entries, err := j.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed on empty journal: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Expected empty journal, got %d entries", len(entries))
	}
}
