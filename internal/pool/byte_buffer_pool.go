// Package pool provides reusable byte buffers for record payload decoding.
package pool

import "sync"

const (
	// RecordBufferDefaultSize fits one budget record of 64Ki float32 values.
	RecordBufferDefaultSize = 1024 * 256 // 256KiB
	// RecordBufferMaxThreshold keeps buffers for records up to 4Mi cells.
	RecordBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Reset empties the buffer, keeping its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Resize sets the length to n, reallocating when the capacity is too small.
// Existing contents are not preserved across a reallocation.
func (bb *ByteBuffer) Resize(n int) []byte {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	}
	bb.B = bb.B[:n]

	return bb.B
}

// ByteBufferPool is a sync.Pool of ByteBuffers. Buffers that grew beyond
// maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize
// capacity. A maxThreshold of zero retains every buffer.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var recordPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)

// GetRecordBuffer retrieves a buffer from the shared record pool.
func GetRecordBuffer() *ByteBuffer {
	return recordPool.Get()
}

// PutRecordBuffer returns a buffer to the shared record pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordPool.Put(bb)
}
