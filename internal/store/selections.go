package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Selection is the remembered value of one control.
type Selection struct {
	ControlID string
	Value     string
	UpdatedAt time.Time
}

// Change is one entry of a control's value history.
type Change struct {
	ID        int64
	ControlID string
	Value     string
	ChangedAt time.Time
}

// SelectionRepo handles selections and their history.
type SelectionRepo struct {
	db *sql.DB
}

func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{db: db} }

func upsertSelection(ctx context.Context, ex execer, s Selection) error {
	_, err := ex.ExecContext(ctx, `
	INSERT INTO selections(control_id, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(control_id) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, s.ControlID, s.Value, s.UpdatedAt)
	return err
}

func deleteSelection(ctx context.Context, ex execer, controlID string) error {
	_, err := ex.ExecContext(ctx, `DELETE FROM selections WHERE control_id = ?`, controlID)
	return err
}

// Record stores the new value and appends it to the history in one
// transaction. An empty value forgets the selection but is still recorded
// in the history.
func (r *SelectionRepo) Record(ctx context.Context, controlID, value string) error {
	at := now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if value == "" {
			err = deleteSelection(ctx, tx, controlID)
		} else {
			err = upsertSelection(ctx, tx, Selection{ControlID: controlID, Value: value, UpdatedAt: at})
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
		INSERT INTO selection_history(control_id, value, changed_at) VALUES (?, ?, ?)
		`, controlID, value, at)
		return err
	})
}

// Get returns nil, nil when the control has no stored value.
func (r *SelectionRepo) Get(ctx context.Context, controlID string) (*Selection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT control_id, value, updated_at FROM selections WHERE control_id = ?`, controlID)
	var s Selection
	if err := row.Scan(&s.ControlID, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// List returns every remembered selection ordered by control id.
func (r *SelectionRepo) List(ctx context.Context) ([]Selection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT control_id, value, updated_at FROM selections ORDER BY control_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Selection
	for rows.Next() {
		var s Selection
		if err := rows.Scan(&s.ControlID, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// History returns up to limit changes for controlID, newest first.
func (r *SelectionRepo) History(ctx context.Context, controlID string, limit int) ([]Change, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, control_id, value, changed_at FROM selection_history
	WHERE control_id = ? ORDER BY id DESC LIMIT ?
	`, controlID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Change
	for rows.Next() {
		var c Change
		if err := rows.Scan(&c.ID, &c.ControlID, &c.Value, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete forgets the stored value without touching the history.
func (r *SelectionRepo) Delete(ctx context.Context, controlID string) error {
	return deleteSelection(ctx, r.db, controlID)
}
