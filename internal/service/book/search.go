package book

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// SearchRequest is the raw query string input, untouched by the handler.
// Every field is optional; validation and defaulting happen in one place so
// no query runs with a partially applied filter set.
type SearchRequest struct {
	Title           string
	Author          string
	Genre           string
	Tags            string
	PublicationYear string
	Rating          string
	Sort            string
	Order           string
	Page            string
	Limit           string
}

var sortFields = map[string]struct{}{
	models.SortTitle:           {},
	models.SortAuthor:          {},
	models.SortPublicationYear: {},
	models.SortGenre:           {},
	models.SortRating:          {},
}

func (s *BookService) Search(ctx context.Context, req SearchRequest) (*models.BookPage, error) {
	query, err := buildQuery(req)
	if err != nil {
		return nil, err
	}

	results, total, err := s.bookRepo.Search(ctx, *query)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Book{}
	}

	return &models.BookPage{
		Total:      total,
		Page:       query.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
		Results:    results,
	}, nil
}

// buildQuery rejects the whole request on the first structural problem with a
// per-field ValidationError; only a fully valid parameter set reaches the
// store.
func buildQuery(req SearchRequest) (*models.BookQuery, error) {
	ve := &app_errors.ValidationError{}
	query := &models.BookQuery{
		Title:  strings.TrimSpace(req.Title),
		Author: strings.TrimSpace(req.Author),
		Genre:  strings.TrimSpace(req.Genre),
		Sort:   models.SortTitle,
		Order:  models.OrderAsc,
		Page:   defaultPage,
		Limit:  defaultLimit,
	}

	if len(query.Title) > maxTitleLen {
		ve.Add("title", fmt.Sprintf("Title cannot exceed %d characters.", maxTitleLen))
	}
	if len(query.Author) > maxAuthorLen {
		ve.Add("author", fmt.Sprintf("Author cannot exceed %d characters.", maxAuthorLen))
	}
	if len(query.Genre) > maxGenreLen {
		ve.Add("genre", fmt.Sprintf("Genre cannot exceed %d characters.", maxGenreLen))
	}

	if req.Tags != "" {
		for _, tag := range strings.Split(req.Tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if len(tag) > maxTagLen {
				ve.Add("tags", fmt.Sprintf("Each tag cannot exceed %d characters.", maxTagLen))
				continue
			}
			query.Tags = append(query.Tags, tag)
		}
	}

	if req.PublicationYear != "" {
		year, err := strconv.Atoi(req.PublicationYear)
		if err != nil {
			ve.Add("publicationYear", "Publication year must be a number.")
		} else if year < minYear || year > maxYear() {
			ve.Add("publicationYear", fmt.Sprintf("Publication year must be between %d and %d.", minYear, maxYear()))
		} else {
			query.PublicationYear = &year
		}
	}

	if req.Rating != "" {
		rating, err := strconv.ParseFloat(req.Rating, 64)
		if err != nil {
			ve.Add("rating", "Rating must be a number.")
		} else if rating < 0 || rating > 10 {
			ve.Add("rating", "Rating must be between 0 and 10.")
		} else {
			query.Rating = &rating
		}
	}

	if req.Sort != "" {
		if _, ok := sortFields[req.Sort]; !ok {
			ve.Add("sort", "Sort must be one of: title, author, publicationYear, genre, rating.")
		} else {
			query.Sort = req.Sort
		}
	}

	if req.Order != "" {
		switch req.Order {
		case models.OrderAsc, models.OrderDesc:
			query.Order = req.Order
		default:
			ve.Add("order", "Order must be asc or desc.")
		}
	}

	if req.Page != "" {
		page, err := strconv.Atoi(req.Page)
		if err != nil || page < 1 {
			ve.Add("page", "Page must be a positive integer.")
		} else {
			query.Page = page
		}
	}

	if req.Limit != "" {
		limit, err := strconv.Atoi(req.Limit)
		if err != nil || limit < 1 || limit > maxLimit {
			ve.Add("limit", fmt.Sprintf("Limit must be between 1 and %d.", maxLimit))
		} else {
			query.Limit = limit
		}
	}

	if !ve.Empty() {
		return nil, ve
	}
	return query, nil
}
