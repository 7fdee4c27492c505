package scraper

import (
	"testing"
)

const resultPageFixture = `<html><body>
<div class="postings-container">
  <div class="PostingCardLayout-sc-i1odl-0 fDfSBL">
    <a href="/departamento-alquiler-caballito-54321001.html">Ver aviso</a>
    <div data-qa="POSTING_CARD_PRICE">$ 150.000</div>
    <div data-qa="expensas">$ 25.000 Expensas</div>
    <div class="postingAddress">Av. Rivadavia 5200</div>
    <h2 data-qa="POSTING_CARD_LOCATION">Caballito, Capital Federal</h2>
    <h3 class="PostingMainFeaturesBlock-sc-1uhtbxc-0"><span>85 m² tot.</span><span>3 amb.</span><span>2 dorm.</span></h3>
    <h3 data-qa="POSTING_CARD_DESCRIPTION">Luminoso departamento de 3 ambientes</h3>
  </div>
  <div class="PostingCardLayout-sc-i1odl-0 fDfSBL">
    <a href="/ph-venta-caballito-54321002.html">Ver aviso</a>
    <div data-qa="POSTING_CARD_PRICE">USD 230.000</div>
    <div class="postingAddress">Neuquén 900</div>
    <h2 data-qa="POSTING_CARD_LOCATION">Caballito, Capital Federal</h2>
  </div>
</div>
<nav>
  <a data-qa="PAGING_1" href="/casas-departamentos-ph-alquiler-caballito.html">1</a>
  <a data-qa="PAGING_2" href="/casas-departamentos-ph-alquiler-caballito-pagina-2.html">2</a>
</nav>
</body></html>`

const lastPageFixture = `<html><body>
<div class="PostingCardLayout-sc-i1odl-0">
  <a href="/departamento-alquiler-caballito-54321003.html">Ver aviso</a>
  <div data-qa="POSTING_CARD_PRICE">$ 95.000</div>
</div>
<nav>
  <a data-qa="PAGING_2" href="/casas-departamentos-ph-alquiler-caballito-pagina-2.html">2</a>
</nav>
</body></html>`

const detailPageFixture = `<html><body>
<ul id="section-icon-features-property">
  <li><i class="icon-stotal"></i>85 m² tot.</li>
  <li><i class="icon-scubierta"></i>80 m² cub.</li>
  <li><i class="icon-ambiente"></i>3 amb.</li>
  <li><i class="icon-bano"></i>1 baño</li>
  <li><i class="icon-dormitorio"></i>2 dorm.</li>
  <li><i class="icon-antiguedad"></i>10 años</li>
  <li><i class="icon-calefaccion"></i>Calefacción central</li>
</ul>
<script>
  const avisoInfo = {
    'idAviso': '54321001',
    'publisher': {'publisherId': 12345, 'name': 'Inmobiliaria Norte', 'url': '/inmobiliaria-norte'},
    'priceOperationTypes': []
  };
</script>
</body></html>`

func TestExtractCards(t *testing.T) {
	e := NewZonapropExtractor("ARS")

	cards := e.ExtractCards([]byte(resultPageFixture))
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}

	first := cards[0]
	if first.ID != "54321001" {
		t.Errorf("Expected ID=54321001, got %q", first.ID)
	}
	if first.URL != "https://www.zonaprop.com.ar/departamento-alquiler-caballito-54321001.html" {
		t.Errorf("Unexpected URL: %q", first.URL)
	}
	if first.Price != "150000" {
		t.Errorf("Expected price \"150000\", got %q", first.Price)
	}
	if first.Currency != "ARS" {
		t.Errorf("Expected currency ARS, got %q", first.Currency)
	}
	if first.Expenses != "25000" {
		t.Errorf("Expected expenses \"25000\", got %q", first.Expenses)
	}
	if first.Address != "Av. Rivadavia 5200" {
		t.Errorf("Unexpected address: %q", first.Address)
	}
	if first.Area != "Caballito, Capital Federal" {
		t.Errorf("Unexpected area: %q", first.Area)
	}
	if len(first.Features) != 3 || first.Features[0] != "85 m² tot." {
		t.Errorf("Unexpected features: %v", first.Features)
	}
	if first.Description != "Luminoso departamento de 3 ambientes" {
		t.Errorf("Unexpected description: %q", first.Description)
	}
	if first.PropertyType != "departamento" || first.OperationType != "alquiler" {
		t.Errorf("Unexpected types: %q / %q", first.PropertyType, first.OperationType)
	}

	second := cards[1]
	if second.Currency != "USD" {
		t.Errorf("Expected currency USD, got %q", second.Currency)
	}
	if second.Expenses != "" {
		t.Errorf("Expected absent expenses, got %q", second.Expenses)
	}
	if second.PropertyType != "ph" || second.OperationType != "venta" {
		t.Errorf("Unexpected types: %q / %q", second.PropertyType, second.OperationType)
	}
}

func TestExtractCardsToleratesEmptyPage(t *testing.T) {
	e := NewZonapropExtractor("ARS")

	if cards := e.ExtractCards([]byte("<html><body></body></html>")); len(cards) != 0 {
		t.Errorf("Expected no cards, got %d", len(cards))
	}
	if cards := e.ExtractCards(nil); len(cards) != 0 {
		t.Errorf("Expected no cards for nil input, got %d", len(cards))
	}
}

func TestNextPageURL(t *testing.T) {
	e := NewZonapropExtractor("ARS")
	currentURL := "https://www.zonaprop.com.ar/casas-departamentos-ph-alquiler-caballito.html"

	next := e.NextPageURL([]byte(resultPageFixture), currentURL)
	want := "https://www.zonaprop.com.ar/casas-departamentos-ph-alquiler-caballito-pagina-2.html"
	if next != want {
		t.Errorf("Expected next page %q, got %q", want, next)
	}
}

func TestNextPageURLExhausted(t *testing.T) {
	e := NewZonapropExtractor("ARS")

	if next := e.NextPageURL([]byte(lastPageFixture), "https://www.zonaprop.com.ar/x-pagina-2.html"); next != "" {
		t.Errorf("Expected empty next page on last page, got %q", next)
	}
	if next := e.NextPageURL([]byte("<html><body>no marker</body></html>"), "https://example.com"); next != "" {
		t.Errorf("Expected empty next page without paging marker, got %q", next)
	}
}

func TestExtractDetails(t *testing.T) {
	e := NewZonapropExtractor("ARS")

	details := e.ExtractDetails([]byte(detailPageFixture))

	want := map[string]string{
		"total_area":     "85",
		"covered_area":   "80",
		"rooms":          "3",
		"bathrooms":      "1",
		"bedrooms":       "2",
		"age":            "10",
		"publisher_name": "Inmobiliaria Norte",
		"publisher_id":   "12345",
		"publisher_url":  "/inmobiliaria-norte",
	}
	for key, value := range want {
		if details[key] != value {
			t.Errorf("Expected %s=%q, got %q", key, value, details[key])
		}
	}

	// icon-cochera is absent from the fixture
	if _, ok := details["parking_spaces"]; ok {
		t.Error("parking_spaces should be absent when its icon is missing")
	}
}

func TestExtractDetailsMissingSections(t *testing.T) {
	e := NewZonapropExtractor("ARS")

	details := e.ExtractDetails([]byte("<html><body><p>nothing here</p></body></html>"))
	if len(details) != 0 {
		t.Errorf("Expected empty details, got %v", details)
	}
}
