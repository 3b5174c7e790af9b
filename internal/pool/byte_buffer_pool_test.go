package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Resize(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, len(bb.B))
	require.Equal(t, 8, cap(bb.B))

	b := bb.Resize(4)
	require.Len(t, b, 4)
	require.Equal(t, 8, cap(bb.B))

	b = bb.Resize(32)
	require.Len(t, b, 32)
	require.GreaterOrEqual(t, cap(bb.B), 32)

	bb.Reset()
	require.Equal(t, 0, len(bb.B))
	require.GreaterOrEqual(t, cap(bb.B), 32)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	t.Run("accepts small buffers", func(t *testing.T) {
		bb := p.Get()
		bb.Resize(10)
		p.Put(bb)
	})

	t.Run("discards oversized buffers", func(t *testing.T) {
		bb := p.Get()
		bb.Resize(128)
		p.Put(bb)

		got := p.Get()
		require.Equal(t, 0, len(got.B))
		require.LessOrEqual(t, cap(got.B), 64)
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		require.NotPanics(t, func() { p.Put(nil) })
	})
}

func TestRecordBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bb := GetRecordBuffer()
			b := bb.Resize(n * 4)
			for j := range b {
				b[j] = byte(n)
			}
			PutRecordBuffer(bb)
		}(i + 1)
	}
	wg.Wait()

	bb := GetRecordBuffer()
	require.Equal(t, 0, len(bb.B))
	PutRecordBuffer(bb)
}
