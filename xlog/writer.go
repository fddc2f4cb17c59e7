package xlog

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	blockCount uint64
	logCount   uint64
	logBytes   uint64
)

var (
	errQueueFull = errors.New("xlog: write queue full")
	errClosed    = errors.New("xlog: writer closed")
)

// asyncWriter hands log lines to a goroutine that owns the rotating file, so
// a slow disk never blocks the caller. Lines are dropped when the queue is
// full.
type asyncWriter struct {
	inputQ chan []byte
	closeQ chan struct{}
	flushQ chan chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	l      *lumberjack.Logger
}

func newAsyncWriter(l *lumberjack.Logger, qsize int) *asyncWriter {
	w := &asyncWriter{
		inputQ: make(chan []byte, qsize),
		closeQ: make(chan struct{}),
		flushQ: make(chan chan struct{}),
		l:      l,
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer w.wg.Done()
	for {
		select {
		case p := <-w.inputQ:
			atomic.AddUint64(&logCount, 1)
			atomic.AddUint64(&logBytes, uint64(len(p)))
			w.l.Write(p)
		case done := <-w.flushQ:
			w.drain()
			close(done)
		case <-w.closeQ:
			w.drain()
			w.l.Close()
			return
		}
	}
}

func (w *asyncWriter) drain() {
	for {
		select {
		case p := <-w.inputQ:
			atomic.AddUint64(&logCount, 1)
			atomic.AddUint64(&logBytes, uint64(len(p)))
			w.l.Write(p)
		default:
			return
		}
	}
}

func (w *asyncWriter) Write(p []byte) (int, error) {
	select {
	case <-w.closeQ:
		return 0, errClosed
	default:
	}
	slice := make([]byte, len(p))
	copy(slice, p)
	select {
	case w.inputQ <- slice:
		return len(slice), nil
	default:
		atomic.AddUint64(&blockCount, 1)
		return 0, errQueueFull
	}
}

// Sync blocks until everything queued so far reached the file.
func (w *asyncWriter) Sync() error {
	done := make(chan struct{})
	select {
	case w.flushQ <- done:
		<-done
	case <-w.closeQ:
	}
	return nil
}

func (w *asyncWriter) Close() error {
	w.once.Do(func() {
		close(w.closeQ)
		w.wg.Wait()
	})
	return nil
}

func BlockCount() uint64 {
	return atomic.LoadUint64(&blockCount)
}

func LogCount() uint64 {
	return atomic.LoadUint64(&logCount)
}

func LogBytes() uint64 {
	return atomic.LoadUint64(&logBytes)
}
