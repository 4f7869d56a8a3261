package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Inventory  = (*Repository)(nil)
)

// Repository persists the order ledger in PostgreSQL using GORM. It also
// serves the inventory read view over the catalog's tables: the order engine
// and the catalog share one storage gateway.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository. Caller manages DB
// lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate. Orders are append-only; there is no
// update or delete path.
type orderRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID       string `gorm:"primaryKey;column:id;type:uuid"`
	OrderID  string `gorm:"column:order_id;type:uuid;index"`
	BookID   string `gorm:"column:book_id;type:uuid;index"`
	Quantity int    `gorm:"column:quantity"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// bookRow is the order engine's read/decrement view of the catalog's books
// table. gorm.DeletedAt keeps snapshot reads and decrements on active rows.
type bookRow struct {
	ID            string         `gorm:"primaryKey;column:id;type:uuid"`
	Title         string         `gorm:"column:title"`
	Price         float64        `gorm:"column:price"`
	StockQuantity int            `gorm:"column:stock_quantity"`
	GenreID       string         `gorm:"column:genre_id;type:uuid"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (bookRow) TableName() string { return "books" }

type genreRow struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	Name      string         `gorm:"column:name"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (genreRow) TableName() string { return "genres" }

// CreateOrder inserts the order, its items, and a conditional decrement per
// item inside one transaction. The decrement matches only rows that still
// hold enough stock; zero rows affected means a concurrent order won the
// race, and the whole transaction rolls back.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := orderRecord{ID: order.ID, UserID: order.UserID}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			itemRecord := orderItemRecord{
				ID:       item.ID,
				OrderID:  order.ID,
				BookID:   item.BookID,
				Quantity: item.Quantity,
			}
			if err := tx.Create(&itemRecord).Error; err != nil {
				return err
			}
			result := tx.Model(&bookRow{}).
				Where("id = ? AND stock_quantity >= ?", item.BookID, item.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &ports.StockConflictError{BookID: item.BookID}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	orders, err := r.attachItems(ctx, []orderRecord{record})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// ListByUser returns a user's orders with items, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.attachItems(ctx, records)
}

// ListAll returns every order with items for the statistics full scan.
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.attachItems(ctx, records)
}

// SnapshotBooks batch-reads active books by id set. Missing and soft-deleted
// ids are simply absent from the result.
func (r *Repository) SnapshotBooks(ctx context.Context, ids []string) (map[string]*domain.BookSnapshot, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	snapshots := make(map[string]*domain.BookSnapshot, len(ids))
	if len(ids) == 0 {
		return snapshots, nil
	}
	var rows []bookRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		snapshots[row.ID] = &domain.BookSnapshot{
			ID:            row.ID,
			Title:         row.Title,
			Price:         row.Price,
			StockQuantity: row.StockQuantity,
		}
	}
	return snapshots, nil
}

// BookFacts resolves current price and genre per book, soft-deleted rows
// included, so historical orders keep contributing to statistics.
func (r *Repository) BookFacts(ctx context.Context, ids []string) (map[string]domain.BookFacts, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	facts := make(map[string]domain.BookFacts, len(ids))
	if len(ids) == 0 {
		return facts, nil
	}
	var books []bookRow
	if err := r.db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	genreIDs := make([]string, 0, len(books))
	for _, book := range books {
		genreIDs = append(genreIDs, book.GenreID)
	}
	genreNames := map[string]string{}
	if len(genreIDs) > 0 {
		var genres []genreRow
		if err := r.db.WithContext(ctx).Unscoped().Where("id IN ?", genreIDs).Find(&genres).Error; err != nil {
			return nil, err
		}
		for _, genre := range genres {
			genreNames[genre.ID] = genre.Name
		}
	}
	for _, book := range books {
		facts[book.ID] = domain.BookFacts{
			Price:     book.Price,
			GenreID:   book.GenreID,
			GenreName: genreNames[book.GenreID],
		}
	}
	return facts, nil
}

func (r *Repository) attachItems(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(records))
	if len(records) == 0 {
		return orders, nil
	}
	orderIDs := make([]string, 0, len(records))
	for _, record := range records {
		orderIDs = append(orderIDs, record.ID)
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}
	itemsByOrder := map[string][]domain.LineItem{}
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], domain.LineItem{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}
	for _, record := range records {
		orders = append(orders, &domain.Order{
			ID:        record.ID,
			UserID:    record.UserID,
			Items:     itemsByOrder[record.ID],
			CreatedAt: record.CreatedAt,
		})
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
