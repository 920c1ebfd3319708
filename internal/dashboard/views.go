package dashboard

import (
	"net/http"

	"github.com/runnerr0/watchlog/internal/history"
)

type rangeJSON struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Total int    `json:"total"`
	Empty bool   `json:"empty"`
}

type monthJSON struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type countsJSON struct {
	Filter  filterJSON       `json:"filter"`
	Total   int              `json:"total"`
	Buckets []history.Bucket `json:"buckets"`
}

type monthlyJSON struct {
	Filter  filterJSON  `json:"filter"`
	Total   int         `json:"total"`
	Periods []monthJSON `json:"periods"`
}

type viewsJSON struct {
	Filter  filterJSON       `json:"filter"`
	Total   int              `json:"total"`
	Hourly  []history.Bucket `json:"hourly"`
	Daily   []history.Bucket `json:"daily"`
	Monthly []monthJSON      `json:"monthly"`
}

func toMonthJSON(ms []history.MonthBucket) []monthJSON {
	out := make([]monthJSON, len(ms))
	for i, m := range ms {
		out[i] = monthJSON{Period: m.PeriodEnd.Format(history.DateLayout), Count: m.Count}
	}
	return out
}

// selection resolves the request filter and applies it to the dataset.
func (s *Server) selection(r *http.Request) (history.Filter, []history.WatchEvent, error) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		return f, nil, err
	}
	f = f.Resolve(s.events)
	return f, f.Apply(s.events), nil
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	out := rangeJSON{Total: len(s.events), Empty: len(s.events) == 0}
	if from, to, ok := history.DateRange(s.events); ok {
		out.From = from.Format(history.DateLayout)
		out.To = to.Format(history.DateLayout)
	}
	respondOK(w, r, out)
}

// handleChannels lists the channels present in the requested date range in
// default order. The channel parameter is ignored.
func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	ranked := history.ChannelCounts(history.Filter{From: f.From, To: f.To}.Apply(s.events))
	if n := s.cfg.TopChannels; n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	respondOK(w, r, ranked)
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	f, sel, err := s.selection(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	respondOK(w, r, countsJSON{Filter: toFilterJSON(f), Total: len(sel), Buckets: history.HourlyCounts(sel)})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	f, sel, err := s.selection(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	respondOK(w, r, countsJSON{Filter: toFilterJSON(f), Total: len(sel), Buckets: history.DailyCounts(sel)})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	f, sel, err := s.selection(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	respondOK(w, r, monthlyJSON{Filter: toFilterJSON(f), Total: len(sel), Periods: toMonthJSON(history.MonthlyCounts(sel))})
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	f, sel, err := s.selection(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	respondOK(w, r, viewsJSON{
		Filter:  toFilterJSON(f),
		Total:   len(sel),
		Hourly:  history.HourlyCounts(sel),
		Daily:   history.DailyCounts(sel),
		Monthly: toMonthJSON(history.MonthlyCounts(sel)),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]any{"events": len(s.events)})
}
