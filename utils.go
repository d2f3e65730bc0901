package arcade

import (
	"bytes"
	"net/http"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func releaseBuffer(b *bytes.Buffer) {
	b.Reset()
	bufferPool.Put(b)
}

// buffered collects a rendered view so that nothing reaches the client
// unless rendering succeeds.
type buffered struct {
	w   http.ResponseWriter
	buf *bytes.Buffer
}

func newBuffered(w http.ResponseWriter) buffered {
	return buffered{w: w, buf: getBuffer()}
}

func (b buffered) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b buffered) close() error {
	defer releaseBuffer(b.buf)
	_, err := b.w.Write(b.buf.Bytes())
	return err
}

func (b buffered) discard() {
	releaseBuffer(b.buf)
}
