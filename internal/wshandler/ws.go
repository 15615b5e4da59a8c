package wshandler

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"

	"github.com/kdudkov/cortran/internal/model"
	"github.com/kdudkov/cortran/pkg/validate"
)

const (
	TypeStart    = "start"
	TypeResidual = "residual"
	TypeDone     = "done"
	TypeError    = "error"
)

// WebMessage is one event of a validation run as seen by the browser.
type WebMessage struct {
	Typ      string                  `json:"type"`
	RunUID   string                  `json:"run,omitempty"`
	Total    int                     `json:"total,omitempty"`
	Residual *validate.Residual      `json:"residual,omitempty"`
	Run      *model.ValidationRunDTO `json:"result,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// Conn is the part of the websocket connection the handler needs.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	SetCloseHandler(h func(code int, text string) error)
	Close() error
}

var _ Conn = &websocket.Conn{}

type JSONWsHandler struct {
	log    *slog.Logger
	name   string
	ws     Conn
	ch     chan *WebMessage
	active int32
}

func NewHandler(log *slog.Logger, name string, ws Conn) *JSONWsHandler {
	return &JSONWsHandler{
		log:    log.With("client", name),
		name:   name,
		ws:     ws,
		ch:     make(chan *WebMessage, 100),
		active: 1,
	}
}

func (w *JSONWsHandler) Name() string {
	return w.name
}

func (w *JSONWsHandler) IsActive() bool {
	return w != nil && atomic.LoadInt32(&w.active) == 1
}

func (w *JSONWsHandler) stop() {
	if atomic.CompareAndSwapInt32(&w.active, 1, 0) {
		close(w.ch)
		w.ws.Close()
	}
}

func (w *JSONWsHandler) writer() {
	for item := range w.ch {
		if !w.IsActive() {
			return
		}

		if item == nil {
			continue
		}

		if err := w.ws.WriteJSON(item); err != nil {
			w.log.Debug("error on write", slog.Any("error", err))
		}
	}
}

func (w *JSONWsHandler) reader() {
	defer w.stop()

	for {
		_, _, err := w.ws.ReadMessage()

		if err != nil {
			w.log.Debug("error on read", slog.Any("error", err))

			return
		}
	}
}

// Send queues the message, a slow client loses messages instead of stalling the run.
// It returns false once the client is gone.
func (w *JSONWsHandler) Send(msg *WebMessage) (ok bool) {
	if w == nil || !w.IsActive() {
		return false
	}

	// stop can close the channel between the check and the send
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case w.ch <- msg:
	default:
		w.log.Debug("message dropped")
	}

	return true
}

func (w *JSONWsHandler) closehandler(code int, text string) error {
	w.log.Info(fmt.Sprintf("closed with code %d, msg %s", code, text))
	w.stop()

	return nil
}

func (w *JSONWsHandler) Listen() {
	w.log.Debug("ws start")
	w.ws.SetCloseHandler(w.closehandler)

	go w.writer()
	w.reader()
	w.log.Debug("ws stop")
}
