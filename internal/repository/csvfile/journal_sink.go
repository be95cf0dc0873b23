package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/pkg/capture"
)

// JournalSink appends completed guided-capture records to a CSV file, one
// row per entry, columns matching the question field ids. It only records;
// listing entries needs the DynamoDB repository.
type JournalSink struct {
	path      string
	questions []capture.Question

	mu sync.Mutex
}

var _ contract.EntrySink = &JournalSink{}

func NewJournalSink(path string, questions []capture.Question) *JournalSink {
	return &JournalSink{path: path, questions: questions}
}

func (s *JournalSink) Record(ctx context.Context, entry *entity.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(s.path); err != nil || info.Size() == 0 {
		writeHeader = true
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if writeHeader {
		header := make([]string, 0, len(s.questions))
		for _, q := range s.questions {
			header = append(header, q.Title)
		}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write journal csv header: %w", err)
		}
	}

	row := make([]string, 0, len(s.questions))
	for _, q := range s.questions {
		row = append(row, entry.Fields[q.FieldId])
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write journal csv row: %w", err)
	}

	w.Flush()
	return w.Error()
}
