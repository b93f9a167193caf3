package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/developer-d723/user-service/internal/service"
	"github.com/developer-d723/user-service/pkg/models"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// the same repository code runs inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements service.Store over PostgreSQL. Calls on the Store itself
// run in auto-commit mode; WithinTx scopes them to one transaction.
type Store struct {
	userRepo
	db *sql.DB
}

// NewStore creates a Store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{userRepo: userRepo{q: db}, db: db}
}

// WithinTx runs fn against a transactional repository, committing when fn
// returns nil and rolling back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(repo service.UserRepository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(userRepo{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// userRepo implements service.UserRepository against a querier.
type userRepo struct {
	q querier
}

func (r userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.q.QueryRowContext(ctx,
		"SELECT id, name, email, age, created_at FROM users WHERE id = $1", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user %s: %w", id, err)
	}
	return &u, nil
}

func (r userRepo) FindAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, name, email, age, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Save inserts u when its ID is empty, assigning the ID and CreatedAt it
// writes back into u. For an existing row only name, email and age are
// updated; id and created_at stay as inserted.
func (r userRepo) Save(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
		u.CreatedAt = time.Now().UTC()
		_, err := r.q.ExecContext(ctx,
			"INSERT INTO users (id, name, email, age, created_at) VALUES ($1, $2, $3, $4, $5)",
			u.ID, u.Name, u.Email, u.Age, u.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	}

	_, err := r.q.ExecContext(ctx,
		"UPDATE users SET name = $1, email = $2, age = $3 WHERE id = $4",
		u.Name, u.Email, u.Age, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	return nil
}

func (r userRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
