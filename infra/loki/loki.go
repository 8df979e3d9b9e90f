package loki

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	pushPath      = "/loki/api/v1/push"
	flushEvery    = 1 * time.Second
	flushAtLength = 20
)

// Writer buffers log lines and ships them to Loki's push API in batches.
type Writer struct {
	url    string
	labels map[string]string
	client *http.Client
	mu     sync.Mutex
	buf    [][2]string
	ticker *time.Ticker
	done   chan struct{}
	closed sync.Once
}

// NewWriter returns nil when url or job is empty so callers can skip the sink.
func NewWriter(url, job string, extraLabels map[string]string) *Writer {
	if url == "" || job == "" {
		return nil
	}
	labels := map[string]string{"job": job}
	for k, v := range extraLabels {
		labels[k] = v
	}
	w := &Writer{
		url:    strings.TrimSuffix(url, "/") + pushPath,
		labels: labels,
		client: &http.Client{Timeout: 5 * time.Second},
		buf:    make([][2]string, 0, 64),
		ticker: time.NewTicker(flushEvery),
		done:   make(chan struct{}),
	}
	go w.flushLoop()
	return w
}

// Write implements io.Writer; each non-empty line becomes one Loki entry.
func (w *Writer) Write(p []byte) (int, error) {
	now := strconv.FormatInt(time.Now().UnixNano(), 10)
	needFlush := false
	w.mu.Lock()
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.buf = append(w.buf, [2]string{now, string(line)})
	}
	needFlush = len(w.buf) >= flushAtLength
	w.mu.Unlock()
	if needFlush {
		w.flush()
	}
	return len(p), nil
}

func (w *Writer) flushLoop() {
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			w.flush()
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return
	}
	values := w.buf
	w.buf = make([][2]string, 0, 64)
	w.mu.Unlock()

	raw, err := json.Marshal(pushRequest{Streams: []stream{{Stream: w.labels, Values: values}}})
	if err != nil {
		return
	}
	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close flushes what is buffered and stops the background flusher.
func (w *Writer) Close() error {
	w.closed.Do(func() {
		w.ticker.Stop()
		close(w.done)
		w.flush()
	})
	return nil
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}
