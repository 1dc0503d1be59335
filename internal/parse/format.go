package parse

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"

	"github.com/dshills/autograde/internal/snapshot"
)

// FormatStates decodes the format checker's state file: one CSV row per
// file of path, modification time (Unix milliseconds), size in bytes and
// status. Rows come back sorted by path. An empty file yields an empty
// report, which graders treat as missing input.
func FormatStates(data []byte, path string) (*snapshot.FormatReport, error) {
	r := &snapshot.FormatReport{Path: path}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse.FormatStates %s: %w", path, err)
		}
		f, err := formatRow(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("parse.FormatStates %s:%d: %w", path, line, err)
		}
		r.Files = append(r.Files, f)
	}
	slices.SortStableFunc(r.Files, func(a, b snapshot.FormatFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return r, nil
}

func formatRow(rec []string) (snapshot.FormatFile, error) {
	mtime, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return snapshot.FormatFile{}, fmt.Errorf("modification time: %w", err)
	}
	rawSize, err := strconv.ParseUint(rec[2], 10, 64)
	if err != nil {
		return snapshot.FormatFile{}, fmt.Errorf("size: %w", err)
	}
	size, err := safecast.Conv[int64](rawSize)
	if err != nil {
		return snapshot.FormatFile{}, fmt.Errorf("size: %w", err)
	}
	status := snapshot.FormatStatus(strings.ToUpper(strings.TrimSpace(rec[3])))
	switch status {
	case snapshot.FormatFormatted, snapshot.FormatUnformatted, snapshot.FormatInvalid:
	default:
		status = snapshot.FormatUnknown
	}
	return snapshot.FormatFile{
		Path:    rec[0],
		ModTime: time.UnixMilli(mtime).UTC(),
		Size:    size,
		Status:  status,
	}, nil
}
