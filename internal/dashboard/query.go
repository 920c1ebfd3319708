package dashboard

import (
	"fmt"
	"net/url"

	"github.com/runnerr0/watchlog/internal/history"
)

// parseFilter reads from, to and channel from the query string.
//
// An absent channel parameter leaves Channels nil (every channel). A channel
// parameter that is present but carries only empty values selects nothing.
func parseFilter(q url.Values) (history.Filter, error) {
	var f history.Filter

	if s := q.Get("from"); s != "" {
		t, err := history.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
		f.From = t
	}
	if s := q.Get("to"); s != "" {
		t, err := history.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
		f.To = t
	}

	if vals, ok := q["channel"]; ok {
		f.Channels = make([]string, 0, len(vals))
		for _, v := range vals {
			if v != "" {
				f.Channels = append(f.Channels, v)
			}
		}
	}

	return f, nil
}

// filterJSON echoes the resolved filter back to the client.
type filterJSON struct {
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Channels []string `json:"channels"`
}

func toFilterJSON(f history.Filter) filterJSON {
	out := filterJSON{Channels: f.Channels}
	if !f.From.IsZero() {
		out.From = f.From.Format(history.DateLayout)
	}
	if !f.To.IsZero() {
		out.To = f.To.Format(history.DateLayout)
	}
	if out.Channels == nil {
		out.Channels = []string{}
	}
	return out
}
