package logger

// RingBuffer keeps the most recent log lines in a fixed-size circular store.
type RingBuffer struct {
	lines     []string
	capacity  int
	head      int // Next write position
	size      int // Current number of stored lines
	totalSeen int // Lines seen since the last rotation
}

// NewRingBuffer creates a ring buffer holding at most capacity lines.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// add stores a line, overwriting the oldest once the buffer is full.
func (rb *RingBuffer) add(line string) {
	rb.lines[rb.head] = line

	rb.head = (rb.head + 1) % rb.capacity
	if rb.size < rb.capacity {
		rb.size++
	}

	rb.totalSeen++
}

// getLines returns the stored lines in chronological order.
func (rb *RingBuffer) getLines() []string {
	if rb.size == 0 {
		return nil
	}

	result := make([]string, rb.size)
	start := (rb.head - rb.size + rb.capacity) % rb.capacity

	for i := range rb.size {
		result[i] = rb.lines[(start+i)%rb.capacity]
	}

	return result
}
