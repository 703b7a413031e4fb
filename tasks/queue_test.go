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

package tasks

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	lane string
	seq  int
}

// collect closes q in the background and returns all results.
func collect[T any](t *testing.T, q *Queue[T]) ([]T, error) {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- q.Close() }()
	var out []T
	for r := range q.Results() {
		out = append(out, r)
	}
	return out, <-errc
}

func TestLaneOrder(t *testing.T) {
	q := New[result](4, 0)
	lanes := []string{"a", "b", "c", "d", "e", "f", "g"}
	const perLane = 50
	for i := range perLane {
		for _, lane := range lanes {
			d := time.Duration((i*7+len(lane))%3) * 10 * time.Microsecond
			require.NoError(t, q.Submit(lane, func() result {
				time.Sleep(d)
				return result{lane: lane, seq: i}
			}))
		}
	}

	out, err := collect(t, q)
	require.NoError(t, err)
	require.Len(t, out, perLane*len(lanes))

	next := map[string]int{}
	for _, r := range out {
		assert.Equal(t, next[r.lane], r.seq, "lane %s", r.lane)
		next[r.lane] = r.seq + 1
	}
}

func TestLanesRunConcurrently(t *testing.T) {
	q := New[string](2, 2)

	// find two lanes served by different workers
	a, b := "lane-0", ""
	for i := 1; b == ""; i++ {
		cand := fmt.Sprintf("lane-%d", i)
		if q.workerFor(cand) != q.workerFor(a) {
			b = cand
		}
	}

	release := make(chan struct{})
	require.NoError(t, q.Submit(a, func() string {
		<-release
		return a
	}))
	require.NoError(t, q.Submit(b, func() string { return b }))

	select {
	case got := <-q.Results():
		assert.Equal(t, b, got)
	case <-time.After(5 * time.Second):
		t.Fatal("lane b was blocked by lane a")
	}
	close(release)

	out, err := collect(t, q)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, out)
}

func TestSubmitAfterClose(t *testing.T) {
	q := New[int](1, 1)
	require.NoError(t, q.Close())
	assert.True(t, errors.Is(q.Submit("x", func() int { return 1 }), ErrClosed))
	assert.NoError(t, q.Close())

	_, ok := <-q.Results()
	assert.False(t, ok)
}

func TestDefaultWorkers(t *testing.T) {
	q := New[int](0, 0)
	assert.Positive(t, q.Workers())
	_, err := collect(t, q)
	assert.NoError(t, err)
}

func TestPanicReported(t *testing.T) {
	q := New[int](1, 4)
	var ran atomic.Int32
	require.NoError(t, q.Submit("x", func() int { panic("boom") }))
	require.NoError(t, q.Submit("x", func() int { ran.Add(1); return 2 }))

	out, err := collect(t, q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []int{2}, out)
	assert.Equal(t, int32(1), ran.Load())
}
