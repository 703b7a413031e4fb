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

package store

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Key identifies a stroke in a store. Keys are opaque, but keys created
// later compare greater.
type Key ulid.ULID

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewKey returns a fresh key.
func NewKey() Key {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return Key(ulid.MustNew(ulid.Timestamp(time.Now()), entropy))
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return Key{}, fmt.Errorf("store: invalid key %q: %w", s, err)
	}
	return Key(id), nil
}

func (k Key) String() string {
	return ulid.ULID(k).String()
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, equal
// to or after other.
func (k Key) Compare(other Key) int {
	return ulid.ULID(k).Compare(ulid.ULID(other))
}

// Layer groups strokes for rendering. Layers are drawn in increasing
// order, so that highlighter strokes stay below the user's ink.
type Layer uint8

const (
	Document Layer = iota
	Image
	Highlighter
	UserLayer
)

func (l Layer) String() string {
	switch l {
	case Document:
		return "document"
	case Image:
		return "image"
	case Highlighter:
		return "highlighter"
	case UserLayer:
		return "user"
	default:
		return fmt.Sprintf("Layer(%d)", uint8(l))
	}
}

// ParseLayer is the inverse of Layer.String.
func ParseLayer(s string) (Layer, error) {
	for l := Document; l <= UserLayer; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("store: unknown layer %q", s)
}
