package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

type bookHandler struct {
	catalog catalogports.Service
}

// bookRequest uses pointer fields so PATCH can distinguish "absent" from a
// zero value. Create validates required fields in the application layer.
type bookRequest struct {
	Title           *string  `json:"title"`
	Writer          *string  `json:"writer"`
	Publisher       *string  `json:"publisher"`
	Description     *string  `json:"description"`
	PublicationYear *int     `json:"publication_year"`
	Price           *float64 `json:"price"`
	StockQuantity   *int     `json:"stock_quantity"`
	GenreID         *string  `json:"genre_id"`
}

func (r bookRequest) toInput() catalogports.BookInput {
	return catalogports.BookInput{
		Title:           r.Title,
		Writer:          r.Writer,
		Publisher:       r.Publisher,
		Description:     r.Description,
		PublicationYear: r.PublicationYear,
		Price:           r.Price,
		StockQuantity:   r.StockQuantity,
		GenreID:         r.GenreID,
	}
}

type bookResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Writer          string    `json:"writer"`
	Publisher       string    `json:"publisher"`
	Description     string    `json:"description"`
	PublicationYear int       `json:"publication_year"`
	Price           float64   `json:"price"`
	StockQuantity   int       `json:"stock_quantity"`
	GenreID         string    `json:"genre_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toBookResponse(book *catalogdomain.Book) bookResponse {
	return bookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Writer:          book.Writer,
		Publisher:       book.Publisher,
		Description:     book.Description,
		PublicationYear: book.PublicationYear,
		Price:           book.Price,
		StockQuantity:   book.StockQuantity,
		GenreID:         book.GenreID,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

func (h *bookHandler) create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	book, err := h.catalog.CreateBook(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "book created", toBookResponse(book))
}

func (h *bookHandler) list(c *gin.Context) {
	params := parseListParams(c)
	books, total, err := h.catalog.ListBooks(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]bookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, toBookResponse(book))
	}
	params = params.Normalize()
	respondList(c, http.StatusOK, "books retrieved", out, newMeta(params.Page, params.Limit, total))
}

func (h *bookHandler) get(c *gin.Context) {
	book, err := h.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book retrieved", toBookResponse(book))
}

func (h *bookHandler) update(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	book, err := h.catalog.UpdateBook(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book updated", toBookResponse(book))
}

func (h *bookHandler) delete(c *gin.Context) {
	if err := h.catalog.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book deleted", nil)
}
