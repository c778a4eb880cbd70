package domain

import "time"

// Client is a slowly-changing dimension row sourced from clients.csv.
type Client struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Job       string
	Email     string
	AccountID string `gorm:"column:account_id"`
}

func (Client) TableName() string { return "clients" }

// Product is a slowly-changing dimension row sourced from products.csv.
type Product struct {
	ID          int64 `gorm:"primaryKey"`
	EAN         int64 `gorm:"column:ean"`
	Brand       string
	Description string
}

func (Product) TableName() string { return "products" }

// Store is a slowly-changing dimension row sourced from stores.csv. The
// combined "(lat,lng)" column from the source file is split into Latitude
// and Longitude before it reaches this struct.
type Store struct {
	ID        int64 `gorm:"primaryKey"`
	Latitude  float64
	Longitude float64
	Opening   string
	Closing   string
	Type      string
}

func (Store) TableName() string { return "stores" }

// Transaction is a fact row built from one hourly partition file.
// ProcessDate is the ingestion partition key: re-running a load for a date
// replaces every row carrying that date.
type Transaction struct {
	TransactionID   int64 `gorm:"primaryKey;column:transaction_id"`
	ClientID        int64 `gorm:"column:client_id"`
	ProductID       int64 `gorm:"column:product_id"`
	StoreID         int64 `gorm:"column:store_id"`
	TransactionTime string
	Quantity        int64
	AccountID       *string   `gorm:"column:account_id"`
	ProcessDate     string    `gorm:"index"`
	ProcessedAt     time.Time `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// FileFingerprint records the last applied content digest per logical file
// name. At most one record exists per name; the hash reflects the most
// recently applied ingestion, not merely the most recently seen file.
type FileFingerprint struct {
	FileName    string `gorm:"primaryKey;column:file_name"`
	ContentHash string
	IngestedAt  time.Time
}

func (FileFingerprint) TableName() string { return "file_fingerprints" }
