package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for all bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&genreRecord{},
		&bookRecord{},
		&userRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Genre schema mirrors the catalog Postgres adapter.
type genreRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	Name      string         `gorm:"column:name;index"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (genreRecord) TableName() string { return "genres" }

// Book schema mirrors the catalog Postgres adapter. The check constraint is
// the last line of defense against negative stock.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:uuid"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Username     string    `gorm:"column:username"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Order schema mirrors the orders Postgres adapter.
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
