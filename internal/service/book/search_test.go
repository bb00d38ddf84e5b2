package book

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
)

func TestBuildQuery_Defaults(t *testing.T) {
	t.Parallel()

	query, err := buildQuery(SearchRequest{})
	require.NoError(t, err)

	assert.Equal(t, models.SortTitle, query.Sort)
	assert.Equal(t, models.OrderAsc, query.Order)
	assert.Equal(t, defaultPage, query.Page)
	assert.Equal(t, defaultLimit, query.Limit)
	assert.Empty(t, query.Tags)
	assert.Nil(t, query.PublicationYear)
	assert.Nil(t, query.Rating)
}

func TestBuildQuery_TrimsFilters(t *testing.T) {
	t.Parallel()

	query, err := buildQuery(SearchRequest{
		Title:  "  gatsby ",
		Author: " fitzgerald",
		Genre:  "Fiction ",
	})
	require.NoError(t, err)

	assert.Equal(t, "gatsby", query.Title)
	assert.Equal(t, "fitzgerald", query.Author)
	assert.Equal(t, "Fiction", query.Genre)
}

func TestBuildQuery_Tags(t *testing.T) {
	t.Parallel()

	query, err := buildQuery(SearchRequest{Tags: "classics, , dystopia ,"})
	require.NoError(t, err)
	assert.Equal(t, []string{"classics", "dystopia"}, query.Tags)
}

func TestBuildQuery_NumericFilters(t *testing.T) {
	t.Parallel()

	query, err := buildQuery(SearchRequest{PublicationYear: "1949", Rating: "8.5"})
	require.NoError(t, err)
	require.NotNil(t, query.PublicationYear)
	require.NotNil(t, query.Rating)
	assert.Equal(t, 1949, *query.PublicationYear)
	assert.Equal(t, 8.5, *query.Rating)
}

func TestBuildQuery_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		req   SearchRequest
		field string
	}{
		{"bad sort", SearchRequest{Sort: "price"}, "sort"},
		{"bad order", SearchRequest{Order: "sideways"}, "order"},
		{"page zero", SearchRequest{Page: "0"}, "page"},
		{"page not a number", SearchRequest{Page: "two"}, "page"},
		{"limit zero", SearchRequest{Limit: "0"}, "limit"},
		{"limit over max", SearchRequest{Limit: strconv.Itoa(maxLimit + 1)}, "limit"},
		{"year not a number", SearchRequest{PublicationYear: "eighties"}, "publicationYear"},
		{"year out of range", SearchRequest{PublicationYear: "999"}, "publicationYear"},
		{"rating not a number", SearchRequest{Rating: "high"}, "rating"},
		{"rating out of range", SearchRequest{Rating: "11"}, "rating"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildQuery(tc.req)
			require.Error(t, err)
			assert.Contains(t, fieldNames(t, err), tc.field)
		})
	}
}

func TestBuildQuery_SortWhitelist(t *testing.T) {
	t.Parallel()

	for _, sort := range []string{
		models.SortTitle, models.SortAuthor, models.SortPublicationYear,
		models.SortGenre, models.SortRating,
	} {
		query, err := buildQuery(SearchRequest{Sort: sort, Order: models.OrderDesc})
		require.NoError(t, err, "sort %q", sort)
		assert.Equal(t, sort, query.Sort)
		assert.Equal(t, models.OrderDesc, query.Order)
	}
}

func TestSearch_Envelope(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	repo.searchResults = []models.Book{{Title: "1984"}, {Title: "Animal Farm"}}
	repo.searchTotal = 41

	service := NewBookService(logger.Discard(), repo, nil)

	page, err := service.Search(context.Background(), SearchRequest{Limit: "20", Page: "2"})
	require.NoError(t, err)

	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Results, 2)

	require.NotNil(t, repo.lastQuery)
	assert.Equal(t, 20, repo.lastQuery.Offset())
}

func TestSearch_EmptyResultIsNotNull(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)

	page, err := service.Search(context.Background(), SearchRequest{})
	require.NoError(t, err)

	assert.NotNil(t, page.Results)
	assert.Len(t, page.Results, 0)
	assert.Equal(t, 0, page.TotalPages)
}

func TestSearch_InvalidRequestSkipsStore(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)

	_, err := service.Search(context.Background(), SearchRequest{Sort: "price"})
	require.Error(t, err)
	assert.Nil(t, repo.lastQuery, "store must not be queried for an invalid request")
}
