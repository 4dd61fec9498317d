package handler

import (
	"bytes"
	"sync"
)

// Buffers above maxPooledBufferSize are dropped so one large leaderboard
// response does not pin its memory in the pool.
const (
	initialBufferSize   = 1 << 10
	maxPooledBufferSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
