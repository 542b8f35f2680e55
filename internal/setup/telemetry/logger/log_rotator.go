// Package logger provides line-bounded log file writers used by the
// telemetry manager.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogRotator wraps an io.Writer and keeps the backing file bounded to a
// fixed number of recent lines.
type LogRotator struct {
	writer   io.Writer
	buffer   *RingBuffer
	filePath string
	mutex    sync.Mutex
}

// NewLogRotator creates a new LogRotator.
func NewLogRotator(writer io.Writer, maxLines int, filePath string) *LogRotator {
	return &LogRotator{
		writer:   writer,
		buffer:   NewRingBuffer(maxLines),
		filePath: filePath,
	}
}

// Write implements io.Writer and maintains the line buffer.
func (w *LogRotator) Write(p []byte) (n int, err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	// Write to the underlying writer first
	n, err = w.writer.Write(p)
	if err != nil {
		return n, err
	}

	newLines := strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n")

	for line := range newLines {
		if line == "" {
			continue
		}

		w.buffer.add(line)

		// Rotate once the file has grown to twice the retained line count
		if w.buffer.totalSeen == w.buffer.capacity*2 {
			if err := w.rotate(); err != nil {
				return n, fmt.Errorf("failed to rotate log file: %w", err)
			}

			w.buffer.totalSeen = w.buffer.size
		}
	}

	return n, nil
}

// rotate rewrites the file with only the buffered lines.
func (w *LogRotator) rotate() error {
	lines := w.buffer.getLines()
	if len(lines) == 0 {
		return nil
	}

	temp, err := os.CreateTemp(filepath.Dir(w.filePath), "temp-log-")
	if err != nil {
		return err
	}

	tempPath := temp.Name()

	content := strings.Join(lines, "\n") + "\n"
	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		os.Remove(tempPath)

		return err
	}

	if err := temp.Sync(); err != nil {
		temp.Close()
		os.Remove(tempPath)

		return err
	}

	temp.Close()

	if closer, ok := w.writer.(io.Closer); ok {
		closer.Close()
	}

	// On Windows, remove the original file first
	os.Remove(w.filePath)

	if err := os.Rename(tempPath, w.filePath); err != nil {
		return err
	}

	newFile, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.writer = newFile

	return nil
}
