package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

type genreHandler struct {
	catalog catalogports.Service
}

type genreRequest struct {
	Name string `json:"name" binding:"required"`
}

type genreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toGenreResponse(genre *catalogdomain.Genre) genreResponse {
	return genreResponse{
		ID:        genre.ID,
		Name:      genre.Name,
		CreatedAt: genre.CreatedAt,
		UpdatedAt: genre.UpdatedAt,
	}
}

func (h *genreHandler) create(c *gin.Context) {
	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	genre, err := h.catalog.CreateGenre(c.Request.Context(), catalogports.GenreInput{Name: req.Name})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "genre created", toGenreResponse(genre))
}

func (h *genreHandler) list(c *gin.Context) {
	params := parseListParams(c)
	genres, total, err := h.catalog.ListGenres(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]genreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, toGenreResponse(genre))
	}
	params = params.Normalize()
	respondList(c, http.StatusOK, "genres retrieved", out, newMeta(params.Page, params.Limit, total))
}

func (h *genreHandler) get(c *gin.Context) {
	genre, err := h.catalog.GetGenre(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "genre retrieved", toGenreResponse(genre))
}

func (h *genreHandler) update(c *gin.Context) {
	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	genre, err := h.catalog.UpdateGenre(c.Request.Context(), c.Param("id"), catalogports.GenreInput{Name: req.Name})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "genre updated", toGenreResponse(genre))
}

func (h *genreHandler) delete(c *gin.Context) {
	if err := h.catalog.DeleteGenre(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "genre deleted", nil)
}
