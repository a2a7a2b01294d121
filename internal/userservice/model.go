package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

// uniqueViolation reports whether the error is a unique constraint violation
// on the named constraint.
func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, u.Username, u.Name, u.Password.hash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, blog_ids, created_at
		FROM users
		WHERE id = $1`

	var u User
	var blogIDs pq.Int64Array

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &blogIDs, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	u.BlogIDs = blogIDs

	return &u, nil
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password_hash, blog_ids, created_at
		FROM users
		WHERE username = $1`

	var u User
	var blogIDs pq.Int64Array

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &blogIDs, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	u.BlogIDs = blogIDs

	return &u, nil
}

func (m *UserModel) getAll(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, name, blog_ids, created_at
		FROM users
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		var blogIDs pq.Int64Array

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &blogIDs, &u.CreatedAt)
		if err != nil {
			return nil, err
		}

		u.BlogIDs = blogIDs
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// blogSummaries resolves a blog_ids list to summary records in list order.
// Ids that no longer reference a stored blog resolve to nothing.
func (m *UserModel) blogSummaries(ctx context.Context, blogIDs []int64) ([]BlogSummary, error) {
	summaries := []BlogSummary{}
	if len(blogIDs) == 0 {
		return summaries, nil
	}

	query := `
		SELECT id, title, author, url
		FROM blogs
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)`

	rows, err := m.db.QueryContext(ctx, query, pq.Int64Array(blogIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s BlogSummary

		err := rows.Scan(&s.ID, &s.Title, &s.Author, &s.URL)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (m *UserModel) appendBlogID(ctx context.Context, userID, blogID int) error {
	query := `
		UPDATE users
		SET blog_ids = array_append(blog_ids, $1)
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *UserModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM users
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
