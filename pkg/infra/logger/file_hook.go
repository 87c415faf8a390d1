package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	fileHookQueueSize  = 1000
	fileHookBufferSize = 32 * 1024
	fileHookFlushEvery = 2 * time.Second
)

// FileHook appends every entry as a JSON line to a file, off the caller's
// goroutine. Entries are dropped while the queue is full. Close must be
// called to flush what is still queued.
type FileHook struct {
	file      *os.File
	writer    *bufio.Writer
	formatter logrus.Formatter
	queue     chan []byte
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewFileHook(logFile string) (*FileHook, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	h := &FileHook{
		file:      file,
		writer:    bufio.NewWriterSize(file, fileHookBufferSize),
		formatter: newJSONFormatter(),
		queue:     make(chan []byte, fileHookQueueSize),
		done:      make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()

	return h, nil
}

func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	select {
	case h.queue <- line:
	default:
	}
	return nil
}

func (h *FileHook) run() {
	defer h.wg.Done()
	ticker := time.NewTicker(fileHookFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case line := <-h.queue:
			_, _ = h.writer.Write(line)
		case <-ticker.C:
			_ = h.writer.Flush()
		case <-h.done:
			for {
				select {
				case line := <-h.queue:
					_, _ = h.writer.Write(line)
				default:
					_ = h.writer.Flush()
					return
				}
			}
		}
	}
}

// Close drains the queue, flushes and closes the file.
func (h *FileHook) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
		err = h.file.Close()
	})
	return err
}
