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

type LibraryPostgres struct {
	db *pgxpool.Pool
}

func NewLibraryPostgres(db *pgxpool.Pool) *LibraryPostgres {
	return &LibraryPostgres{db: db}
}

func (r *LibraryPostgres) Add(ctx context.Context, entry models.LibraryEntry) (*models.LibraryEntry, error) {
	query := `
		INSERT INTO library_entries (id, user_id, book_id, status, rating, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING added_at
	`
	err := r.db.QueryRow(ctx, query, entry.ID, entry.UserID, entry.BookID, entry.Status, entry.Rating, entry.Notes).
		Scan(&entry.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, app_errors.ErrEntryExists
		}
		return nil, fmt.Errorf("failed to insert library entry: %w", err)
	}
	return &entry, nil
}

func (r *LibraryPostgres) Remove(ctx context.Context, userID, bookID uuid.UUID) (*models.LibraryEntry, error) {
	query := `
		DELETE FROM library_entries
		 WHERE user_id = $1 AND book_id = $2
		RETURNING id, user_id, book_id, status, rating, notes, added_at
	`
	var entry models.LibraryEntry
	err := r.db.QueryRow(ctx, query, userID, bookID).
		Scan(&entry.ID, &entry.UserID, &entry.BookID, &entry.Status, &entry.Rating, &entry.Notes, &entry.AddedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *LibraryPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LibraryEntry, error) {
	query := `
		SELECT e.id, e.user_id, e.book_id, e.status, e.rating, e.notes, e.added_at,
		       b.id, b.title, b.author, b.publication_year, b.genre
		FROM library_entries e
		INNER JOIN books b ON b.id = e.book_id
		WHERE e.user_id = $1
		ORDER BY e.added_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query library entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LibraryEntry
	for rows.Next() {
		var entry models.LibraryEntry
		var book models.BookSummary
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.BookID, &entry.Status, &entry.Rating, &entry.Notes, &entry.AddedAt,
			&book.ID, &book.Title, &book.Author, &book.PublicationYear, &book.Genre,
		)
		if err != nil {
			return nil, err
		}
		entry.Book = &book
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
