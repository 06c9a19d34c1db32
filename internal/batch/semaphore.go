package batch

import "context"

// semaphore bounds how many files are transcribed at once
type semaphore struct {
	ch chan struct{}
}

// newSemaphore creates a semaphore with at least one slot
func newSemaphore(capacity int) *semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// acquire blocks until a slot is free or ctx is done.
// A slot is never handed out once ctx is done.
func (s *semaphore) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := ctx.Err(); err != nil {
		s.release()
		return err
	}
	return nil
}

func (s *semaphore) release() {
	<-s.ch
}
