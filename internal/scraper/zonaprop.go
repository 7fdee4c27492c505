package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const zonapropBaseURL = "https://www.zonaprop.com.ar"

// Zonaprop result-page and detail-page selectors.
const (
	cardSelector        = "div.PostingCardLayout-sc-i1odl-0"
	priceSelector       = `div[data-qa="POSTING_CARD_PRICE"]`
	expensesSelector    = `div[data-qa="expensas"]`
	addressSelector     = "div.postingAddress"
	areaSelector        = `h2[data-qa="POSTING_CARD_LOCATION"]`
	featuresSelector    = "h3.PostingMainFeaturesBlock-sc-1uhtbxc-0 span"
	descriptionSelector = `h3[data-qa="POSTING_CARD_DESCRIPTION"]`
	featureSectionID    = "ul#section-icon-features-property"
)

var (
	listingIDRe = regexp.MustCompile(`-(\d+)\.html$`)
	pagingRe    = regexp.MustCompile(`PAGING_(\d+)`)
	publisherRe = regexp.MustCompile(`'publisher'\s*:\s*(\{[^}]+\})`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// iconFields maps detail-page feature icons to listing attributes.
// Icons not listed here are ignored.
var iconFields = map[string]string{
	"icon-stotal":     "total_area",
	"icon-scubierta":  "covered_area",
	"icon-ambiente":   "rooms",
	"icon-bano":       "bathrooms",
	"icon-cochera":    "parking_spaces",
	"icon-dormitorio": "bedrooms",
	"icon-antiguedad": "age",
}

// ZonapropExtractor holds all Zonaprop-specific markup knowledge. The rest
// of the pipeline only sees the Extractor interface, so a different site
// is a matter of writing another extractor.
type ZonapropExtractor struct {
	fallbackCurrency string
}

func NewZonapropExtractor(fallbackCurrency string) *ZonapropExtractor {
	return &ZonapropExtractor{fallbackCurrency: fallbackCurrency}
}

// NextPageURL reads the current page number from the PAGING marker and
// resolves the link to the following page. Returns "" when pagination is
// exhausted.
func (e *ZonapropExtractor) NextPageURL(page []byte, currentURL string) string {
	m := pagingRe.FindSubmatch(page)
	if m == nil {
		return ""
	}
	current, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		log.Printf("Error parsing result page: %v", err)
		return ""
	}

	selector := fmt.Sprintf(`a[data-qa="PAGING_%d"]`, current+1)
	href := SafeExtractAttr(doc.Selection, selector, "href")
	if href == "" {
		return ""
	}
	return resolveURL(currentURL, href)
}

// ExtractCards parses every listing card on a result page into a partial
// Listing. Missing fields stay empty; a card without a detail link is
// skipped entirely.
func (e *ZonapropExtractor) ExtractCards(page []byte) []*Listing {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		log.Printf("Error parsing result page: %v", err)
		return nil
	}

	var listings []*Listing
	doc.Find(cardSelector).Each(func(i int, card *goquery.Selection) {
		href := SafeExtractAttr(card, "a", "href")
		if href == "" {
			log.Printf("Skipping card %d: no detail link", i+1)
			return
		}
		listingURL := href
		if !strings.HasPrefix(listingURL, "http") {
			listingURL = zonapropBaseURL + listingURL
		}

		var id string
		if m := listingIDRe.FindStringSubmatch(listingURL); m != nil {
			id = m[1]
		}

		rawPrice := SafeExtract(card, priceSelector)
		item := &Listing{
			ID:          id,
			Date:        ScrapeDate(time.Now()),
			Price:       CleanPrice(rawPrice),
			Currency:    InferCurrency(rawPrice, e.fallbackCurrency),
			Expenses:    CleanExpenses(SafeExtract(card, expensesSelector)),
			Address:     SafeExtract(card, addressSelector),
			Area:        SafeExtract(card, areaSelector),
			Description: SafeExtract(card, descriptionSelector),
			URL:         listingURL,
		}
		card.Find(featuresSelector).Each(func(_ int, span *goquery.Selection) {
			if text := strings.TrimSpace(span.Text()); text != "" {
				item.Features = append(item.Features, text)
			}
		})
		item.PropertyType, item.OperationType = typesFromURL(listingURL)

		listings = append(listings, item)
	})

	return listings
}

// ExtractDetails parses a detail page into a flat field map. Sections that
// are missing simply contribute no keys.
func (e *ZonapropExtractor) ExtractDetails(page []byte) map[string]string {
	details := make(map[string]string)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		log.Printf("Error parsing detail page: %v", err)
		return details
	}

	section := doc.Find(featureSectionID)
	if section.Length() > 0 {
		for icon, field := range iconFields {
			el := section.Find("i." + icon).First()
			if el.Length() == 0 {
				continue
			}
			value := strings.TrimSpace(el.Parent().Text())
			if num := digitsRe.FindString(value); num != "" {
				details[field] = num
			}
		}
	} else {
		log.Println("Could not find feature section in the detail page")
	}

	e.extractPublisher(doc, details)
	return details
}

// extractPublisher scans inline scripts for the embedded publisher object.
// The fragment uses single-quoted pseudo-JSON, so quotes are rewritten
// before decoding.
func (e *ZonapropExtractor) extractPublisher(doc *goquery.Document, details map[string]string) {
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, "'publisher':") {
			return true
		}
		m := publisherRe.FindStringSubmatch(text)
		if m == nil {
			return true
		}

		fragment := strings.ReplaceAll(m[1], "'", `"`)
		var data map[string]any
		dec := json.NewDecoder(strings.NewReader(fragment))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			log.Printf("Error decoding publisher data: %v", err)
			return true
		}

		if v, ok := data["name"]; ok {
			details["publisher_name"] = fmt.Sprint(v)
		}
		if v, ok := data["publisherId"]; ok {
			details["publisher_id"] = fmt.Sprint(v)
		}
		if v, ok := data["url"]; ok {
			details["publisher_url"] = fmt.Sprint(v)
		}
		return false
	})
}

// typesFromURL derives property and operation type from the detail URL
// path, e.g. ".../departamento-alquiler-caballito-12345.html".
func typesFromURL(listingURL string) (string, string) {
	parts := strings.Split(listingURL, "/")
	if len(parts) < 4 {
		return "", ""
	}
	segment := strings.SplitN(parts[3], "-", 3)
	if len(segment) < 2 {
		return "", ""
	}
	return segment[0], segment[1]
}

func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return zonapropBaseURL + href
	}
	h, err := url.Parse(href)
	if err != nil {
		return zonapropBaseURL + href
	}
	return b.ResolveReference(h).String()
}
