package utils

import (
	"log/slog"
	"sync"
)

const DEFAULT_BATCH_SIZE = 32

// BatchBuffer accumulates items until it holds a full batch.
type BatchBuffer[T any] struct {
	size       int
	buffer     []T
	bufferLock sync.Mutex
}

func NewBatchBuffer[T any](size int) *BatchBuffer[T] {
	if size <= 0 {
		size = DEFAULT_BATCH_SIZE
	}
	return &BatchBuffer[T]{
		size:   size,
		buffer: make([]T, 0, size),
	}
}

// Add appends item and reports whether the buffer reached its batch size.
func (b *BatchBuffer[T]) Add(item T) bool {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	b.buffer = append(b.buffer, item)
	return len(b.buffer) >= b.size
}

func (b *BatchBuffer[T]) GetAndClear() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	if len(b.buffer) == 0 {
		return nil
	}

	batch := b.buffer
	b.buffer = make([]T, 0, b.size)
	return batch
}

func (b *BatchBuffer[T]) Size() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()
	return len(b.buffer)
}

func (b *BatchBuffer[T]) HasData() bool {
	return b.Size() > 0
}

// Drain hands every full batch in items to fn, then the remainder.
func Drain[T any](items []T, size int, fn func(batch []T) error) error {
	buf := NewBatchBuffer[T](size)
	for _, item := range items {
		if buf.Add(item) {
			if err := flush(buf, fn); err != nil {
				return err
			}
		}
	}
	if buf.HasData() {
		return flush(buf, fn)
	}
	return nil
}

func flush[T any](buf *BatchBuffer[T], fn func(batch []T) error) error {
	batch := buf.GetAndClear()
	slog.Debug("[BatchBuffer] Processing batch", slog.Int("batch_size", len(batch)))
	return fn(batch)
}
