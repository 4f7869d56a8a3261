package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

var (
	_ ports.GenreRepository = (*GenreRepository)(nil)
	_ ports.BookRepository  = (*BookRepository)(nil)
)

const uniqueViolation = "23505"

// genreRecord maps the genre aggregate to a relational table. gorm.DeletedAt
// gives every query the active-rows-only filter the catalog requires.
type genreRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	Name      string         `gorm:"column:name;index"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (genreRecord) TableName() string { return "genres" }

// bookRecord maps the book aggregate. The CHECK constraint backs the
// non-negative stock invariant at commit time.
type bookRecord struct {
	ID              string         `gorm:"primaryKey;column:id;type:uuid"`
	Title           string         `gorm:"column:title;index"`
	Writer          string         `gorm:"column:writer;index"`
	Publisher       string         `gorm:"column:publisher"`
	Description     string         `gorm:"column:description"`
	PublicationYear int            `gorm:"column:publication_year"`
	Price           float64        `gorm:"column:price"`
	StockQuantity   int            `gorm:"column:stock_quantity;check:stock_quantity >= 0"`
	GenreID         string         `gorm:"column:genre_id;type:uuid;index"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (bookRecord) TableName() string { return "books" }

// GenreRepository persists genres in PostgreSQL using GORM.
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository wires a PostgreSQL-backed genre repository. Caller
// manages DB lifecycle.
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if err := r.checkNameFree(ctx, genre.Name, ""); err != nil {
		return nil, err
	}
	record := genreRecord{ID: genre.ID, Name: genre.Name}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, mapWriteError(err, ports.ErrDuplicateName)
	}
	return r.GetByID(ctx, record.ID)
}

func (r *GenreRepository) GetByID(ctx context.Context, id string) (*domain.Genre, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record genreRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *GenreRepository) List(ctx context.Context, params ports.ListParams) ([]*domain.Genre, int64, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&genreRecord{})
	if params.Query != "" {
		query = query.Where("name ILIKE ?", "%"+params.Query+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []genreRecord
	if err := query.Order(orderClause(params)).
		Offset(params.Offset()).Limit(params.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	genres := make([]*domain.Genre, 0, len(records))
	for i := range records {
		genres = append(genres, records[i].toDomain())
	}
	return genres, total, nil
}

func (r *GenreRepository) Update(ctx context.Context, genre *domain.Genre) (*domain.Genre, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if err := r.checkNameFree(ctx, genre.Name, genre.ID); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&genreRecord{}).
		Where("id = ?", genre.ID).
		Update("name", genre.Name)
	if result.Error != nil {
		return nil, mapWriteError(result.Error, ports.ErrDuplicateName)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, genre.ID)
}

func (r *GenreRepository) SoftDelete(ctx context.Context, id string) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&genreRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *GenreRepository) checkNameFree(ctx context.Context, name, excludeID string) error {
	var count int64
	query := r.db.WithContext(ctx).Model(&genreRecord{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ports.ErrDuplicateName
	}
	return nil
}

func (r genreRecord) toDomain() *domain.Genre {
	return &domain.Genre{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// BookRepository persists books in PostgreSQL using GORM.
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository wires a PostgreSQL-backed book repository. Caller manages
// DB lifecycle.
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if err := r.checkTitleFree(ctx, book.Title, ""); err != nil {
		return nil, err
	}
	record := toBookRecord(book)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, mapWriteError(err, ports.ErrDuplicateTitle)
	}
	return r.GetByID(ctx, record.ID)
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	var record bookRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *BookRepository) List(ctx context.Context, params ports.ListParams) ([]*domain.Book, int64, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&bookRecord{})
	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where("title ILIKE ? OR writer ILIKE ? OR publisher ILIKE ?", like, like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []bookRecord
	if err := query.Order(orderClause(params)).
		Offset(params.Offset()).Limit(params.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	books := make([]*domain.Book, 0, len(records))
	for i := range records {
		books = append(books, records[i].toDomain())
	}
	return books, total, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	if err := r.checkTitleFree(ctx, book.Title, book.ID); err != nil {
		return nil, err
	}
	record := toBookRecord(book)
	result := r.db.WithContext(ctx).Model(&bookRecord{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":            record.Title,
			"writer":           record.Writer,
			"publisher":        record.Publisher,
			"description":      record.Description,
			"publication_year": record.PublicationYear,
			"price":            record.Price,
			"stock_quantity":   record.StockQuantity,
			"genre_id":         record.GenreID,
		})
	if result.Error != nil {
		return nil, mapWriteError(result.Error, ports.ErrDuplicateTitle)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, book.ID)
}

func (r *BookRepository) SoftDelete(ctx context.Context, id string) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *BookRepository) checkTitleFree(ctx context.Context, title, excludeID string) error {
	var count int64
	query := r.db.WithContext(ctx).Model(&bookRecord{}).Where("title = ?", title)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ports.ErrDuplicateTitle
	}
	return nil
}

func toBookRecord(book *domain.Book) bookRecord {
	return bookRecord{
		ID:              book.ID,
		Title:           book.Title,
		Writer:          book.Writer,
		Publisher:       book.Publisher,
		Description:     book.Description,
		PublicationYear: book.PublicationYear,
		Price:           book.Price,
		StockQuantity:   book.StockQuantity,
		GenreID:         book.GenreID,
	}
}

func (r bookRecord) toDomain() *domain.Book {
	return &domain.Book{
		ID:              r.ID,
		Title:           r.Title,
		Writer:          r.Writer,
		Publisher:       r.Publisher,
		Description:     r.Description,
		PublicationYear: r.PublicationYear,
		Price:           r.Price,
		StockQuantity:   r.StockQuantity,
		GenreID:         r.GenreID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func ensureDB(db *gorm.DB) error {
	if db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func orderClause(params ports.ListParams) string {
	direction := "ASC"
	if params.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", params.SortBy, direction)
}

// mapWriteError translates a unique-index violation into the duplicate
// sentinel; the pre-write count check races with concurrent writers, the
// index is the authoritative guard.
func mapWriteError(err error, duplicate error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return duplicate
	}
	return err
}
