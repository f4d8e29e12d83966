package feed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Writer serializes writes to a websocket connection, which allows at most
// one concurrent writer.
type Writer struct {
	conn    *websocket.Conn
	format  Format
	timeout time.Duration
	mu      sync.Mutex
}

// NewWriter wraps conn. Each write must finish within timeout.
func NewWriter(conn *websocket.Conn, format Format, timeout time.Duration) *Writer {
	return &Writer{conn: conn, format: format, timeout: timeout}
}

// WriteFrame encodes and sends one frame.
func (w *Writer) WriteFrame(fr Frame) error {
	mt, data, err := Encode(w.format, fr)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
		return err
	}
	return w.conn.WriteMessage(mt, data)
}

// Ping sends a websocket ping.
func (w *Writer) Ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(w.timeout))
}

// Close sends a normal closure and closes the connection.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(w.timeout))
	return w.conn.Close()
}
