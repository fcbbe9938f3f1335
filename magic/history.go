package magic

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vsql-project/vsql/core"
)

// Record is a single entry of the invocation history.
type Record struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	State     string `json:"state"`
	TimeTaken int64  `json:"time_taken_us"`
	Timestamp int64  `json:"timestamp_us"`
	Error     string `json:"error,omitempty"`
}

// History is the per-session invocation log, JSON-persisted to a file.
type History struct {
	path    string
	records []*Record
}

func NewHistory(path string) *History {
	return &History{
		path: path,
	}
}

func (h *History) Add(query string, state core.InvocationState, timeTaken time.Duration, timestamp time.Time, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	h.records = append(h.records, &Record{
		ID:        uuid.New().String(),
		Query:     query,
		State:     state.String(),
		TimeTaken: timeTaken.Microseconds(),
		Timestamp: timestamp.UnixMicro(),
		Error:     errMsg,
	})
}

func (h *History) Records() []*Record {
	return h.records
}

func (h *History) Store() error {
	b, err := json.MarshalIndent(h.records, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	file, err := os.Create(h.path)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	_, err = file.Write(b)
	if err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}

	return nil
}

func (h *History) Restore() error {
	file, err := os.Open(h.path)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)

	var records []*Record

	err = decoder.Decode(&records)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}

	h.records = append(records, h.records...)

	return nil
}
