package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.Password, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, app_errors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

func (r *UserPostgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserPostgres) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserPostgres) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	query := `
		UPDATE users
		   SET role = $2,
		       updated_at = now()
		 WHERE id = $1
		RETURNING id, email, password_hash, role, created_at, updated_at
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id, role))
}

func (r *UserPostgres) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
