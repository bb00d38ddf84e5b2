package service

import (
	"github.com/Gojer16/Book-Management-API/internal/service/auth"
	"github.com/Gojer16/Book-Management-API/internal/service/book"
	"github.com/Gojer16/Book-Management-API/internal/service/library"
)

type Collection struct {
	AuthService    *auth.AuthService
	BookService    *book.BookService
	LibraryService *library.LibraryService
}
