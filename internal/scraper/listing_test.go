package scraper

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMergeDetailsDropsUnknownKeys(t *testing.T) {
	listing := &Listing{ID: "123"}

	listing.MergeDetails(map[string]string{
		"rooms": "3",
		"foo":   "bar",
	})

	if listing.Rooms != "3" {
		t.Errorf("Expected Rooms=\"3\", got %q", listing.Rooms)
	}

	data, err := json.Marshal(listing)
	if err != nil {
		t.Fatal("Error marshaling listing:", err)
	}
	if strings.Contains(string(data), "foo") {
		t.Errorf("Unknown key leaked into serialized listing: %s", data)
	}
}

func TestMergeDetailsAllKnownKeys(t *testing.T) {
	listing := &Listing{ID: "123"}

	listing.MergeDetails(map[string]string{
		"total_area":     "85",
		"covered_area":   "80",
		"rooms":          "3",
		"bathrooms":      "1",
		"parking_spaces": "1",
		"bedrooms":       "2",
		"age":            "10",
		"publisher_name": "Inmobiliaria Norte",
		"publisher_id":   "12345",
		"publisher_url":  "/inmobiliaria-norte",
	})

	if listing.TotalArea != "85" || listing.CoveredArea != "80" {
		t.Errorf("Area fields not merged: total=%q covered=%q", listing.TotalArea, listing.CoveredArea)
	}
	if listing.Bedrooms != "2" || listing.Age != "10" {
		t.Errorf("Feature fields not merged: bedrooms=%q age=%q", listing.Bedrooms, listing.Age)
	}
	if listing.PublisherName != "Inmobiliaria Norte" || listing.PublisherID != "12345" {
		t.Errorf("Publisher fields not merged: name=%q id=%q", listing.PublisherName, listing.PublisherID)
	}
}

func TestListingSerializationOmitsAbsentFields(t *testing.T) {
	listing := &Listing{
		ID:       "54321001",
		Date:     ScrapeDate(time.Date(2026, 8, 23, 15, 4, 5, 0, time.UTC)),
		Price:    "150000",
		Currency: "ARS",
	}

	data, err := json.Marshal(listing)
	if err != nil {
		t.Fatal("Error marshaling listing:", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal("Error unmarshaling listing:", err)
	}

	if _, ok := decoded["expenses"]; ok {
		t.Error("Absent expenses should be omitted from JSON")
	}
	if _, ok := decoded["rooms"]; ok {
		t.Error("Absent detail fields should be omitted from JSON")
	}

	if decoded["date"] != "2026-08-23" {
		t.Errorf("Expected date \"2026-08-23\", got %v", decoded["date"])
	}
	if decoded["price"] != "150000" {
		t.Errorf("Expected price \"150000\", got %v", decoded["price"])
	}
}

func TestScrapeDateRoundTrip(t *testing.T) {
	var d ScrapeDate
	if err := json.Unmarshal([]byte(`"2026-08-23"`), &d); err != nil {
		t.Fatal("Error unmarshaling date:", err)
	}
	if time.Time(d).Format("2006-01-02") != "2026-08-23" {
		t.Errorf("Unexpected date after round trip: %v", time.Time(d))
	}

	if err := json.Unmarshal([]byte(`"23/08/2026"`), &d); err == nil {
		t.Error("Expected error for malformed date")
	}
}
