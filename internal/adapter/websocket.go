package adapter

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nmiell/tinybasic/internal/engine"
)

// zeroDeadline means "no deadline" to gorilla/websocket's WriteControl.
func zeroDeadline() time.Time { return time.Time{} }

// WebSocket adapts one gorilla/websocket connection to engine.IOAdapter.
// Inbound text messages are queued as bytes and served to GetInputChar;
// GetInputChar returns Waiting when the queue is empty but the connection
// is still open, so a session's engine is driven with repeated Next calls
// rather than RunUntilEndOfInput (see cmd/tinybasicd).
type WebSocket struct {
	conn *websocket.Conn

	mu     sync.Mutex
	queue  []byte
	closed bool
	bye    bool
}

// NewWebSocket wraps conn and starts the background reader that feeds
// incoming messages into the input queue.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	w := &WebSocket{conn: conn}
	go w.pump()
	return w
}

func (w *WebSocket) pump() {
	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			w.mu.Lock()
			w.closed = true
			w.mu.Unlock()
			return
		}
		w.mu.Lock()
		w.queue = append(w.queue, data...)
		if len(data) == 0 || data[len(data)-1] != '\n' {
			w.queue = append(w.queue, '\n')
		}
		w.mu.Unlock()
	}
}

func (w *WebSocket) GetInputChar() engine.InputCharResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) > 0 {
		b := w.queue[0]
		w.queue = w.queue[1:]
		return engine.CharValue(b)
	}
	if w.closed {
		return engine.CharEndOfStream()
	}
	return engine.CharWaiting()
}

func (w *WebSocket) Interactive() bool { return true }

func (w *WebSocket) PutOutputChar(c byte) {
	_ = w.conn.WriteMessage(websocket.TextMessage, []byte{c})
}

func (w *WebSocket) ShowCommandPrompt() { _ = w.conn.WriteMessage(websocket.TextMessage, []byte("> ")) }
func (w *WebSocket) ShowInputPrompt()   { _ = w.conn.WriteMessage(websocket.TextMessage, []byte("? ")) }

func (w *WebSocket) ShowErrorMessage(text string) {
	_ = w.conn.WriteMessage(websocket.TextMessage, []byte(text+"\n"))
}

func (w *WebSocket) ShowDebugTraceMessage(text string) {
	_ = w.conn.WriteMessage(websocket.TextMessage, []byte(text+"\n"))
}

func (w *WebSocket) Bye() {
	w.mu.Lock()
	w.bye = true
	w.mu.Unlock()
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), zeroDeadline())
	_ = w.conn.Close()
}

// Terminated reports whether BYE has been signalled or the peer closed
// the connection.
func (w *WebSocket) Terminated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bye || w.closed
}
