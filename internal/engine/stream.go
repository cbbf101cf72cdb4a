package engine

// Stream is an in-order asynchronous task queue. Work submitted to one
// stream runs serially in submission order; distinct streams overlap.
type Stream struct {
	tasks chan func()
	done  chan struct{}
}

func newStream() *Stream {
	s := &Stream{
		tasks: make(chan func(), 16),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	defer close(s.done)
	for task := range s.tasks {
		task()
	}
}

func (s *Stream) submit(task func()) {
	s.tasks <- task
}

// Synchronize blocks the caller until every task submitted to the stream so
// far has completed. Host code only; calling it from a kernel deadlocks the
// stream it runs on.
func (s *Stream) Synchronize() {
	ch := make(chan struct{})
	s.submit(func() { close(ch) })
	<-ch
}

func (s *Stream) close() {
	close(s.tasks)
	<-s.done
}
