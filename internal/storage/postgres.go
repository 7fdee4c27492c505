package storage

import (
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"zonaprop-hunter/internal/scraper"
)

// ListingRecord is the relational shape of a scraped listing. Runs upsert
// by ListingID, so re-scraping the same search refreshes existing rows.
type ListingRecord struct {
	ID        uint   `gorm:"primaryKey"`
	ListingID string `gorm:"uniqueIndex;size:32;not null"`
	ScrapedAt time.Time

	Price    string `gorm:"size:32"`
	Currency string `gorm:"size:8"`
	Expenses string `gorm:"size:32"`

	Address     string
	Area        string
	Features    string
	Description string
	URL         string

	TotalArea     string `gorm:"size:16"`
	CoveredArea   string `gorm:"size:16"`
	Rooms         string `gorm:"size:16"`
	Bathrooms     string `gorm:"size:16"`
	ParkingSpaces string `gorm:"size:16"`
	Bedrooms      string `gorm:"size:16"`
	Age           string `gorm:"size:16"`

	PublisherName string
	PublisherID   string `gorm:"size:32"`
	PublisherURL  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostgresWriter stores listings in Postgres next to the JSON output.
type PostgresWriter struct {
	db *gorm.DB
}

func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ListingRecord{}); err != nil {
		return nil, err
	}
	return &PostgresWriter{db: db}, nil
}

func (w *PostgresWriter) Write(listings []*scraper.Listing) error {
	for _, listing := range listings {
		if listing.ID == "" {
			continue
		}

		record := toRecord(listing)

		var existing ListingRecord
		result := w.db.Where("listing_id = ?", listing.ID).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := w.db.Create(record).Error; err != nil {
				return err
			}
			continue
		}
		if result.Error != nil {
			return result.Error
		}

		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if err := w.db.Save(record).Error; err != nil {
			return err
		}
	}
	return nil
}

func toRecord(l *scraper.Listing) *ListingRecord {
	return &ListingRecord{
		ListingID: l.ID,
		ScrapedAt: time.Time(l.Date),

		Price:    l.Price,
		Currency: l.Currency,
		Expenses: l.Expenses,

		Address:     l.Address,
		Area:        l.Area,
		Features:    strings.Join(l.Features, ", "),
		Description: l.Description,
		URL:         l.URL,

		TotalArea:     l.TotalArea,
		CoveredArea:   l.CoveredArea,
		Rooms:         l.Rooms,
		Bathrooms:     l.Bathrooms,
		ParkingSpaces: l.ParkingSpaces,
		Bedrooms:      l.Bedrooms,
		Age:           l.Age,

		PublisherName: l.PublisherName,
		PublisherID:   l.PublisherID,
		PublisherURL:  l.PublisherURL,
	}
}
