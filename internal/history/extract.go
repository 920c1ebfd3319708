package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrDataSource matches every DataSourceError via errors.Is.
var ErrDataSource = errors.New("data source error")

// DataSourceError reports an export that is missing, unreadable, or not a
// JSON array of entries.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read watch history: %v", e.Err)
	}
	return fmt.Sprintf("read watch history %s: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Is reports ErrDataSource as a match.
func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }

// ExtractFile opens the export at path and extracts its watch entries.
func ExtractFile(path string) ([]RawEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}
	defer f.Close()

	events, err := Extract(f)
	if err != nil {
		var dse *DataSourceError
		if errors.As(err, &dse) {
			dse.Path = path
		}
		return nil, err
	}
	return events, nil
}

// Extract reads a JSON array of history entries from r and returns one
// RawEvent per entry carrying a non-empty titleUrl. Invalid UTF-8 is replaced
// rather than rejected, and a leading byte order mark is dropped.
func Extract(r io.Reader) ([]RawEvent, error) {
	dec := json.NewDecoder(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))

	tok, err := dec.Token()
	if err != nil {
		return nil, &DataSourceError{Err: fmt.Errorf("expected JSON array: %w", err)}
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, &DataSourceError{Err: fmt.Errorf("expected JSON array, got %v", tok)}
	}

	events := []RawEvent{}
	for dec.More() {
		var entry json.RawMessage
		if err := dec.Decode(&entry); err != nil {
			return nil, &DataSourceError{Err: fmt.Errorf("decode entry %d: %w", len(events), err)}
		}
		if ev, ok := extractEntry(entry); ok {
			events = append(events, ev)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, &DataSourceError{Err: fmt.Errorf("unterminated JSON array: %w", err)}
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, &DataSourceError{Err: fmt.Errorf("data after JSON array: %w", err)}
		}
		return nil, &DataSourceError{Err: fmt.Errorf("data after JSON array: unexpected %v", tok)}
	}

	return events, nil
}

// extractEntry maps one entry to a RawEvent. Entries that are not objects or
// lack a titleUrl are not watch events.
func extractEntry(entry json.RawMessage) (RawEvent, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return RawEvent{}, false
	}

	url := stringField(fields, "titleUrl")
	if url == nil || *url == "" {
		return RawEvent{}, false
	}

	return RawEvent{
		Title:   stringField(fields, "title"),
		URL:     url,
		Channel: channelField(fields),
		TimeRaw: stringField(fields, "time"),
	}, true
}

// stringField returns the named field when it holds a JSON string.
func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

// channelField returns the name of the first subtitles element.
func channelField(fields map[string]json.RawMessage) *string {
	raw, ok := fields["subtitles"]
	if !ok {
		return nil
	}
	var subtitles []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &subtitles); err != nil || len(subtitles) == 0 {
		return nil
	}
	return stringField(subtitles[0], "name")
}
