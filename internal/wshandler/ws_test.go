package wshandler

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kdudkov/cortran/pkg/validate"
)

type fakeConn struct {
	mx      sync.Mutex
	written []any
	read    chan error
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{read: make(chan error)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	return 0, nil, <-c.read
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.written = append(c.written, v)

	return nil
}

func (c *fakeConn) SetCloseHandler(func(code int, text string) error) {}

func (c *fakeConn) Close() error {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.closed = true

	return nil
}

func (c *fakeConn) count() int {
	c.mx.Lock()
	defer c.mx.Unlock()

	return len(c.written)
}

func TestHandler(t *testing.T) {
	conn := newFakeConn()
	h := NewHandler(slog.Default(), "test", conn)

	done := make(chan struct{})

	go func() {
		h.Listen()
		close(done)
	}()

	assert.True(t, h.IsActive())
	assert.True(t, h.Send(&WebMessage{Typ: TypeStart, Total: 2}))
	assert.True(t, h.Send(&WebMessage{Typ: TypeResidual, Residual: &validate.Residual{N: 1, Point: "p1"}}))

	assert.Eventually(t, func() bool { return conn.count() == 2 }, time.Second, time.Millisecond*10)

	conn.read <- errors.New("closed")
	<-done

	assert.False(t, h.IsActive())
	assert.False(t, h.Send(&WebMessage{Typ: TypeDone}))
	assert.True(t, conn.closed)

	var nilHandler *JSONWsHandler
	assert.False(t, nilHandler.Send(&WebMessage{}))
}
