package scraper

import (
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// ScrapeDate is the day a listing was scraped (not its publish date).
// It serializes as "YYYY-MM-DD".
type ScrapeDate time.Time

func (d ScrapeDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format("2006-01-02"))
}

func (d *ScrapeDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid scrape date %q: %w", s, err)
	}
	*d = ScrapeDate(t)
	return nil
}

// Listing is one normalized property record. Card-level fields are set at
// construction; detail fields are filled in exactly once by MergeDetails
// after the detail page has been fetched. Absent fields are omitted from
// the JSON output.
type Listing struct {
	ID            string     `json:"id,omitempty"`
	Date          ScrapeDate `json:"date"`
	Price         string     `json:"price,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	Expenses      string     `json:"expenses,omitempty"`
	Address       string     `json:"location_address,omitempty"`
	Area          string     `json:"location_area,omitempty"`
	Features      []string   `json:"features,omitempty"`
	Description   string     `json:"description,omitempty"`
	URL           string     `json:"url,omitempty"`
	PropertyType  string     `json:"property_type,omitempty"`
	OperationType string     `json:"operation_type,omitempty"`

	TotalArea     string `json:"total_area,omitempty"`
	CoveredArea   string `json:"covered_area,omitempty"`
	Rooms         string `json:"rooms,omitempty"`
	Bathrooms     string `json:"bathrooms,omitempty"`
	ParkingSpaces string `json:"parking_spaces,omitempty"`
	Bedrooms      string `json:"bedrooms,omitempty"`
	Age           string `json:"age,omitempty"`

	PublisherName string `json:"publisher_name,omitempty"`
	PublisherID   string `json:"publisher_id,omitempty"`
	PublisherURL  string `json:"publisher_url,omitempty"`
}

// MergeDetails copies recognized detail fields into the listing. Keys that
// do not map to a known attribute are dropped, so upstream markup changes
// add noise to the logs instead of polluting the output schema.
func (l *Listing) MergeDetails(details map[string]string) {
	for key, value := range details {
		switch key {
		case "total_area":
			l.TotalArea = value
		case "covered_area":
			l.CoveredArea = value
		case "rooms":
			l.Rooms = value
		case "bathrooms":
			l.Bathrooms = value
		case "parking_spaces":
			l.ParkingSpaces = value
		case "bedrooms":
			l.Bedrooms = value
		case "age":
			l.Age = value
		case "publisher_name":
			l.PublisherName = value
		case "publisher_id":
			l.PublisherID = value
		case "publisher_url":
			l.PublisherURL = value
		default:
			log.Printf("Ignoring unknown detail field %q for listing %s", key, l.ID)
		}
	}
}
