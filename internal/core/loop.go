package core

import "sync"

// Loop is a serial executor: everything posted runs on one goroutine, in
// post order. It gives the view-model its single logical thread of control,
// so the state machine needs no locks.
type Loop struct {
	fns  chan func()
	once sync.Once
	quit chan struct{}
	done chan struct{}
}

func NewLoop() *Loop {
	l := &Loop{
		fns:  make(chan func(), 64),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.fns:
			fn()
		case <-l.quit:
			// Drain what was already queued, then stop.
			for {
				select {
				case fn := <-l.fns:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Post enqueues fn for execution on the loop goroutine. It never runs fn
// inline, so a Post from inside the loop lands on the next turn.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.quit:
	case l.fns <- fn:
	}
}

// Sync posts fn and waits for it to finish. Returns false if the loop is
// already stopped.
func (l *Loop) Sync(fn func()) bool {
	ch := make(chan struct{})
	l.Post(func() {
		fn()
		close(ch)
	})
	select {
	case <-ch:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Stop() {
	l.once.Do(func() { close(l.quit) })
	<-l.done
}
