package store

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-crawler/internal/model"
)

// JSONLEmitter writes one JSON object per line. Safe for single-writer use;
// the batch runner serializes Emit calls through its results channel.
type JSONLEmitter struct {
	w     *bufio.Writer
	close func() error
}

// NewJSONLEmitter writes to the file at path, or stdout when path is "-"
// or empty.
func NewJSONLEmitter(path string) (*JSONLEmitter, error) {
	if path == "" || path == "-" {
		return &JSONLEmitter{w: bufio.NewWriter(os.Stdout), close: func() error { return nil }}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "jsonl: create %s", path)
	}
	return &JSONLEmitter{w: bufio.NewWriter(f), close: f.Close}, nil
}

// NewJSONLWriter wraps an arbitrary writer. The caller owns the writer.
func NewJSONLWriter(w io.Writer) *JSONLEmitter {
	return &JSONLEmitter{w: bufio.NewWriter(w), close: func() error { return nil }}
}

func (e *JSONLEmitter) Emit(_ context.Context, rec *model.DomainRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrapf(err, "jsonl: marshal %s", rec.Domain)
	}
	if _, err := e.w.Write(line); err != nil {
		return eris.Wrap(err, "jsonl: write")
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return eris.Wrap(err, "jsonl: write")
	}
	return nil
}

func (e *JSONLEmitter) Close() error {
	if err := e.w.Flush(); err != nil {
		return eris.Wrap(err, "jsonl: flush")
	}
	return e.close()
}
