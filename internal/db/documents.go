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

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/stroke"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("db: document not found")

// SaveDocument writes d and all strokes of st, replacing what was
// previously saved for the document.
func SaveDocument(ctx context.Context, db *sql.DB, d *doc.Document, st *store.Store) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	layout, err := d.Layout.MarshalText()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, x, y, width, height, format_width, format_height, layout, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  x = excluded.x, y = excluded.y,
		  width = excluded.width, height = excluded.height,
		  format_width = excluded.format_width, format_height = excluded.format_height,
		  layout = excluded.layout, saved_at = excluded.saved_at`,
		d.ID.String(), d.X, d.Y, d.Width, d.Height,
		d.Format.Width, d.Format.Height, string(layout), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM strokes WHERE document_id = ?`, d.ID.String()); err != nil {
		return fmt.Errorf("clearing strokes: %w", err)
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO strokes (key, document_id, layer, seq, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ins.Close()

	for seq, key := range st.Keys() {
		s, _ := st.GetStroke(key)
		layer, _ := st.Layer(key)
		data, err := stroke.Encode(s)
		if err != nil {
			return fmt.Errorf("stroke %s: %w", key, err)
		}
		_, err = ins.ExecContext(ctx, key.String(), d.ID.String(), layer.String(), seq, string(data))
		if err != nil {
			return fmt.Errorf("saving stroke %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// LoadDocument reads a saved document. The strokes are returned in a new
// store, with their geometry recomputed. No images are rendered.
func LoadDocument(ctx context.Context, db *sql.DB, id uuid.UUID) (*doc.Document, *store.Store, error) {
	d := &doc.Document{ID: id}
	var layout string
	err := db.QueryRowContext(ctx, `
		SELECT x, y, width, height, format_width, format_height, layout
		FROM documents WHERE id = ?`, id.String()).
		Scan(&d.X, &d.Y, &d.Width, &d.Height, &d.Format.Width, &d.Format.Height, &layout)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	} else if err != nil {
		return nil, nil, err
	}
	if err := d.Layout.UnmarshalText([]byte(layout)); err != nil {
		return nil, nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT key, layer, data FROM strokes
		WHERE document_id = ? ORDER BY seq`, id.String())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	st := store.New()
	for rows.Next() {
		var keyStr, layerStr, data string
		if err := rows.Scan(&keyStr, &layerStr, &data); err != nil {
			return nil, nil, err
		}
		key, err := store.ParseKey(keyStr)
		if err != nil {
			return nil, nil, err
		}
		layer, err := store.ParseLayer(layerStr)
		if err != nil {
			return nil, nil, err
		}
		s, err := stroke.Decode([]byte(data))
		if err != nil {
			return nil, nil, fmt.Errorf("stroke %s: %w", keyStr, err)
		}
		if err := st.Restore(key, s, layer); err != nil {
			return nil, nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return d, st, nil
}

// ListDocuments returns the IDs of all saved documents, most recently
// saved first.
func ListDocuments(ctx context.Context, db *sql.DB) ([]uuid.UUID, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM documents ORDER BY saved_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
