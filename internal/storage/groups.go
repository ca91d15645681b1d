package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dafi.es/dafibot/internal/election"
)

type GroupRepository struct {
	db *DB
}

func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{db: db}
}

type groupRow struct {
	ID            int64         `db:"id"`
	Name          string        `db:"name"`
	Course        string        `db:"course"`
	Year          int           `db:"year"`
	Number        int           `db:"number"`
	DelegateID    sql.NullInt64 `db:"delegate_id"`
	SubdelegateID sql.NullInt64 `db:"subdelegate_id"`
}

func (r groupRow) toGroup() *election.Group {
	return &election.Group{
		ID:            r.ID,
		Name:          r.Name,
		Course:        r.Course,
		Year:          r.Year,
		Number:        r.Number,
		DelegateID:    nullableID(r.DelegateID),
		SubdelegateID: nullableID(r.SubdelegateID),
	}
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

const groupColumns = `id, name, course, year, number, delegate_id, subdelegate_id`

func (r *GroupRepository) Create(ctx context.Context, g *election.Group) error {
	q := r.db.db.Rebind(`
		INSERT INTO class_groups (name, course, year, number)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	if err := r.db.db.GetContext(ctx, &g.ID, q, g.Name, g.Course, g.Year, g.Number); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByRef returns nil, nil when no group has that year and number.
func (r *GroupRepository) GetByRef(ctx context.Context, ref election.GroupRef) (*election.Group, error) {
	var row groupRow
	q := r.db.db.Rebind(`SELECT ` + groupColumns + ` FROM class_groups WHERE year = ? AND number = ?`)
	err := r.db.db.GetContext(ctx, &row, q, ref.Year, ref.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", ref, err)
	}
	return row.toGroup(), nil
}

// HeldBy lists the groups where the user is delegate or subdelegate, ordered
// by year and number. It is a query helper for seeding and inspecting role
// assignments; the election flow itself only writes through AssignRole.
func (r *GroupRepository) HeldBy(ctx context.Context, userID int64) ([]*election.Group, error) {
	var rows []groupRow
	q := r.db.db.Rebind(`
		SELECT ` + groupColumns + `
		FROM class_groups
		WHERE delegate_id = ? OR subdelegate_id = ?
		ORDER BY year, number
	`)
	if err := r.db.db.SelectContext(ctx, &rows, q, userID, userID); err != nil {
		return nil, fmt.Errorf("list groups held by %d: %w", userID, err)
	}

	groups := make([]*election.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.toGroup())
	}
	return groups, nil
}

// roleColumn maps a role to its column. Only these two literals ever reach SQL.
func roleColumn(role election.Role) string {
	if role == election.RoleDelegate {
		return "delegate_id"
	}
	return "subdelegate_id"
}

// AssignRole clears the role from every group where the user holds it, then
// gives the user that role on groupID. The other role column is never touched.
func (r *GroupRepository) AssignRole(ctx context.Context, groupID, userID int64, role election.Role) error {
	col := roleColumn(role)

	tx, err := r.db.beginSerializable(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	release := tx.Rebind(`UPDATE class_groups SET ` + col + ` = NULL WHERE ` + col + ` = ?`)
	if _, err := tx.ExecContext(ctx, release, userID); err != nil {
		return fmt.Errorf("clear previous %s: %w", role, err)
	}

	assign := tx.Rebind(`UPDATE class_groups SET ` + col + ` = ? WHERE id = ?`)
	res, err := tx.ExecContext(ctx, assign, userID, groupID)
	if err != nil {
		return fmt.Errorf("assign %s: %w", role, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign %s: rows affected: %w", role, err)
	}
	if affected == 0 {
		return election.ErrGroupNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
