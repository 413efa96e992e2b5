package scrape

import (
	"encoding/json"
	"io"
)

// Frame is one NDJSON line of scrape progress.
type Frame struct {
	Type       string `json:"type"`
	Message    string `json:"message,omitempty"`
	Processed  int    `json:"processed,omitempty"`
	Total      int    `json:"total,omitempty"`
	CurrentURL string `json:"currentUrl,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// Streamer writes frames one JSON object per line, flushing after each so the
// client sees progress while the scrape is still running.
type Streamer struct {
	enc   *json.Encoder
	flush func()
}

func NewStreamer(w io.Writer, flush func()) *Streamer {
	if flush == nil {
		flush = func() {}
	}
	return &Streamer{enc: json.NewEncoder(w), flush: flush}
}

func (s *Streamer) Send(f Frame) {
	// Encode appends the newline that delimits frames.
	_ = s.enc.Encode(f)
	s.flush()
}

func (s *Streamer) Error(message string) {
	s.Send(Frame{Type: "error", Message: message})
}
