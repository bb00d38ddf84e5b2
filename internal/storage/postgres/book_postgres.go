package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, genre, publication_year, description, tags, rating, isbn, cover_url, created_at, updated_at`

// sortColumns whitelists the query-string sort values; anything else never
// reaches the ORDER BY clause.
var sortColumns = map[string]string{
	models.SortTitle:           "title",
	models.SortAuthor:          "author",
	models.SortPublicationYear: "publication_year",
	models.SortGenre:           "genre",
	models.SortRating:          "rating",
}

type BookPostgres struct {
	db *pgxpool.Pool
}

func NewBookPostgres(db *pgxpool.Pool) *BookPostgres {
	return &BookPostgres{db: db}
}

func (r *BookPostgres) Create(ctx context.Context, book *models.Book) error {
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now
	query := `
		INSERT INTO books (
			id, title, author, genre, publication_year, description,
			tags, rating, isbn, cover_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12
		)
	`
	_, err := r.db.Exec(
		ctx,
		query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationYear,
		book.Description,
		book.Tags,
		book.Rating,
		nullIfEmpty(book.ISBN),
		book.CoverURL,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return app_errors.ErrDuplicateISBN
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *BookPostgres) ByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return scanBook(r.db.QueryRow(ctx, query, id))
}

// ByISBN looks up a book by its normalized ISBN.
func (r *BookPostgres) ByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`
	return scanBook(r.db.QueryRow(ctx, query, isbn))
}

func (r *BookPostgres) Update(ctx context.Context, book *models.Book) error {
	book.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE books
		   SET title = $2,
		       author = $3,
		       genre = $4,
		       publication_year = $5,
		       description = $6,
		       tags = $7,
		       rating = $8,
		       isbn = $9,
		       cover_url = $10,
		       updated_at = $11
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(
		ctx,
		query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationYear,
		book.Description,
		book.Tags,
		book.Rating,
		nullIfEmpty(book.ISBN),
		book.CoverURL,
		book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return app_errors.ErrDuplicateISBN
		}
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrBookNotFound
	}
	return nil
}

func (r *BookPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrBookNotFound
	}
	return nil
}

func (r *BookPostgres) SetCoverURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE books SET cover_url = $2, updated_at = now() WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, url)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrBookNotFound
	}
	return nil
}

// Search runs the filter twice: once for the total count, once for the
// requested page. Both use the same WHERE clause so the envelope stays
// consistent.
func (r *BookPostgres) Search(ctx context.Context, q models.BookQuery) ([]models.Book, int, error) {
	where, args := buildSearchFilter(q)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM books`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM books%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		bookColumns, where, orderClause(q), len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, query, append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *book)
	}
	return books, total, rows.Err()
}

// buildSearchFilter turns a validated BookQuery into a WHERE clause and its
// arguments. Title and author match as case-insensitive substrings, genre as
// anchored case-insensitive equality, tags when any book tag contains any of
// the requested candidates, the numeric fields exactly.
func buildSearchFilter(q models.BookQuery) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if q.Title != "" {
		args = append(args, escapeLike(q.Title))
		conds = append(conds, fmt.Sprintf(`title ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if q.Author != "" {
		args = append(args, escapeLike(q.Author))
		conds = append(conds, fmt.Sprintf(`author ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if q.Genre != "" {
		args = append(args, q.Genre)
		conds = append(conds, fmt.Sprintf(`lower(genre) = lower($%d)`, len(args)))
	}
	if len(q.Tags) > 0 {
		candidates := make([]string, len(q.Tags))
		for i, tag := range q.Tags {
			candidates[i] = escapeLike(tag)
		}
		args = append(args, candidates)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM unnest(tags) AS tag, unnest($%d::text[]) AS cand WHERE tag ILIKE '%%' || cand || '%%')`,
			len(args)))
	}
	if q.PublicationYear != nil {
		args = append(args, *q.PublicationYear)
		conds = append(conds, fmt.Sprintf(`publication_year = $%d`, len(args)))
	}
	if q.Rating != nil {
		args = append(args, *q.Rating)
		conds = append(conds, fmt.Sprintf(`rating = $%d`, len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause assumes q passed validation: Sort is a whitelisted field and
// Order is asc or desc. A secondary sort on id keeps pagination stable and
// NULLS LAST keeps unrated books at the end of a descending rating sort.
func orderClause(q models.BookQuery) string {
	column := sortColumns[q.Sort]
	if q.Order == models.OrderDesc {
		return column + " DESC NULLS LAST, id ASC"
	}
	return column + " ASC, id ASC"
}

// escapeLike neutralizes LIKE metacharacters in user input so a search for
// "100%" matches the literal text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var book models.Book
	var isbn *string
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.PublicationYear,
		&book.Description,
		&book.Tags,
		&book.Rating,
		&isbn,
		&book.CoverURL,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrBookNotFound
		}
		return nil, err
	}
	if isbn != nil {
		book.ISBN = *isbn
	}
	return &book, nil
}
