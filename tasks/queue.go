// seehuhn.de/go/marker - a freehand marker stroke engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package tasks runs background jobs in order.
//
// Every job is submitted on a lane. Jobs on the same lane run one at a
// time, in submission order, and their results are delivered in that
// order. Different lanes may run concurrently.
package tasks

import (
	"errors"
	"fmt"
	"hash/fnv"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("tasks: queue closed")

// Queue is a pool of workers producing results of type T.
//
// Results must be read from the Results channel. Once the channel buffer
// is full, workers wait until results are taken.
type Queue[T any] struct {
	workers []*worker[T]
	results chan T
	g       errgroup.Group

	mu     sync.Mutex
	closed bool
}

type worker[T any] struct {
	mu     sync.Mutex
	jobs   []func() T
	closed bool
	wake   chan struct{}
}

// New starts a queue with the given number of workers and a results
// buffer of the given size. If workers is 0 or negative, GOMAXPROCS is
// used.
func New[T any](workers, buffer int) *Queue[T] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	q := &Queue[T]{
		workers: make([]*worker[T], workers),
		results: make(chan T, max(buffer, 0)),
	}
	for i := range q.workers {
		w := &worker[T]{wake: make(chan struct{}, 1)}
		q.workers[i] = w
		q.g.Go(func() error { return q.run(w) })
	}
	return q
}

// Submit appends job to the given lane. Submit never blocks.
func (q *Queue[T]) Submit(lane string, job func() T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}

	w := q.workers[q.workerFor(lane)]
	w.mu.Lock()
	w.jobs = append(w.jobs, job)
	w.mu.Unlock()
	w.signal()
	return nil
}

// Results returns the channel on which job results are delivered. The
// channel is closed by Close, after the last result.
func (q *Queue[T]) Results() <-chan T {
	return q.results
}

// Close stops accepting jobs, waits for all submitted jobs to finish and
// then closes the results channel. The returned error reports the first
// job which panicked. Close is safe to call multiple times.
//
// Since Close waits for results to be delivered, the results channel
// must be drained concurrently.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	for _, w := range q.workers {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		w.signal()
	}
	err := q.g.Wait()
	close(q.results)
	return err
}

// Workers returns the number of workers.
func (q *Queue[T]) Workers() int {
	return len(q.workers)
}

func (q *Queue[T]) workerFor(lane string) int {
	if len(q.workers) == 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(lane))
	return int(h.Sum32() % uint32(len(q.workers)))
}

func (q *Queue[T]) run(w *worker[T]) error {
	var firstErr error
	for {
		w.mu.Lock()
		if len(w.jobs) == 0 {
			closed := w.closed
			w.mu.Unlock()
			if closed {
				return firstErr
			}
			<-w.wake
			continue
		}
		job := w.jobs[0]
		w.jobs[0] = nil
		w.jobs = w.jobs[1:]
		w.mu.Unlock()

		res, err := call(job)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		q.results <- res
	}
}

func (w *worker[T]) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// call runs job, converting a panic into an error.
func call[T any](job func() T) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tasks: job panicked: %v", r)
		}
	}()
	return job(), nil
}
