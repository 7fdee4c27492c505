package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var priceReplacer = strings.NewReplacer("$", "", "USD", "", ".", "")
var expensesReplacer = strings.NewReplacer("$", "", ".", "", "Expensas", "")

// CleanPrice strips currency markers and thousand separators from a raw
// price string, e.g. "$ 150.000" -> "150000".
func CleanPrice(raw string) string {
	return strings.TrimSpace(priceReplacer.Replace(raw))
}

// CleanExpenses strips currency markers and the "Expensas" label.
// Returns "" when the card carries no expenses block.
func CleanExpenses(raw string) string {
	return strings.TrimSpace(expensesReplacer.Replace(raw))
}

// CleanArea strips the unit suffix, e.g. "85 m²" -> "85".
func CleanArea(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "m²", ""))
}

// InferCurrency inspects raw price text for a USD marker and falls back
// to the configured currency when none is present.
func InferCurrency(raw, fallback string) string {
	if strings.Contains(raw, "USD") {
		return "USD"
	}
	return fallback
}

// SafeExtract returns the trimmed text of the first descendant matching
// selector, or "" when there is no match.
func SafeExtract(sel *goquery.Selection, selector string) string {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// SafeExtractAttr returns the named attribute of the first descendant
// matching selector, or "" when the element or attribute is missing.
func SafeExtractAttr(sel *goquery.Selection, selector, attr string) string {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return ""
	}
	value, _ := found.Attr(attr)
	return strings.TrimSpace(value)
}
