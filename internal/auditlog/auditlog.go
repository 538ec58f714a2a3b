// Package auditlog appends moderation decisions to a JSONL file. Text is
// redacted before anything is written; the log is an account of decisions,
// not a store of user content.
package auditlog

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// Entry is one logged moderation decision.
type Entry struct {
	Timestamp      string   `json:"timestamp"`
	Text           string   `json:"text"`
	Score          float64  `json:"score"`
	Level          string   `json:"level"`
	Tags           []string `json:"tags,omitempty"` // "Category/Tag"
	RequiresReview bool     `json:"requires_review"`
	Source         string   `json:"source,omitempty"` // "http" or "cli"
}

// Logger appends entries to a file. Safe for concurrent use.
type Logger struct {
	file *os.File
	mu   sync.Mutex
}

func New(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &Logger{file: file}, nil
}

func (l *Logger) Log(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.Text = Redact(entry.Text)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Read loads all entries from a log file, skipping malformed lines. A
// missing file yields no entries and no error.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
