package render

import (
	"errors"
	"strings"
	"testing"

	"bizdocs/internal/registry"
	"bizdocs/pkg/models"
)

func ptr[T any](v T) *T { return &v }

func newTestRenderer(t *testing.T, cfg Config) *HTMLRenderer {
	t.Helper()
	r, err := NewHTMLRenderer(cfg)
	if err != nil {
		t.Fatalf("NewHTMLRenderer: %v", err)
	}
	return r
}

func sampleData() *models.DocumentData {
	return &models.DocumentData{
		DocumentNumber:  "RE-2024-0042",
		Date:            "2024-03-15",
		DueDate:         "2024-03-29",
		ValidUntil:      "2024-04-15",
		DeliveryDate:    "2024-03-16",
		CustomerName:    "Muster GmbH",
		CustomerAddress: models.Address{Street: "Hauptstraße 5", ZipCode: "80331", City: "München"},
		Items: []models.Item{
			{Description: "Elektroinstallation", Quantity: 3, Unit: "Std.", UnitPrice: 10, DiscountPercent: ptr(20.0)},
			{Description: "Treuerabatt", Quantity: 1, UnitPrice: 50, Category: models.CategoryDiscount, DiscountPercent: ptr(10.0)},
		},
		Subtotal:  1000,
		TaxRate:   19,
		TaxAmount: 190,
		Total:     1190,
		Notes:     "Vielen Dank für Ihren Auftrag.",
	}
}

func sampleSettings() *models.CompanySettings {
	return &models.CompanySettings{
		Name:      "Elektro Schmidt e.K.",
		Address:   models.Address{Street: "Werkstraße 1", ZipCode: "10115", City: "Berlin"},
		Email:     "info@elektro-schmidt.de",
		TaxNumber: "12/345/67890",
		VATID:     "DE123456789",
		IBAN:      "DE02120300000000202051",
		LogoURL:   "https://cdn.example.de/logo.png",
	}
}

func TestEveryTemplateRendersTheSameRecord(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	for _, entry := range registry.All() {
		t.Run(entry.ID, func(t *testing.T) {
			html, err := r.RenderHTML(Request{TemplateID: entry.ID, Data: sampleData(), CompanySettings: sampleSettings()})
			if err != nil {
				t.Fatalf("RenderHTML: %v", err)
			}
			for _, want := range []string{"RE-2024-0042", "Muster GmbH", "Hauptstraße 5", "80331 München", "Elektroinstallation", entry.Kind.Title()} {
				if !strings.Contains(html, want) {
					t.Errorf("output misses %q", want)
				}
			}
			assertSectionOrder(t, html)
		})
	}
}

func TestEveryTemplateRendersMinimalRecord(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	minimal := &models.DocumentData{DocumentNumber: "X-1"}
	for _, entry := range registry.All() {
		if _, err := r.RenderHTML(Request{TemplateID: entry.ID, Data: minimal}); err != nil {
			t.Errorf("%s: minimal record failed: %v", entry.ID, err)
		}
	}
}

func assertSectionOrder(t *testing.T, html string) {
	t.Helper()
	order := []string{"section-header", "section-parties", "section-meta", "section-items", "section-footer"}
	last := -1
	for _, class := range order {
		idx := strings.Index(html, class)
		if idx < 0 {
			t.Fatalf("section %s missing", class)
		}
		if idx < last {
			t.Fatalf("section %s out of order", class)
		}
		last = idx
	}
}

func TestSkinsExistForRegistry(t *testing.T) {
	for _, e := range registry.All() {
		if _, ok := SkinByName(e.Skin); !ok {
			t.Errorf("%s references unknown skin %q", e.ID, e.Skin)
		}
	}
}

func TestQuoteLineTotalsAndDiscountColumn(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	view, err := r.View(Request{TemplateID: "professional-business-quote", Data: sampleData()})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if !view.ShowDiscountColumn {
		t.Fatal("discount column expected")
	}
	if got := view.Items[0].Total; got != "24,00 €" {
		t.Errorf("discounted line total = %q, want 24,00 €", got)
	}
	if got := view.Items[1].Total; got != "-50,00 €" {
		t.Errorf("discount sentinel total = %q, want -50,00 €", got)
	}
	if view.Items[1].Discount != "" {
		t.Errorf("sentinel line must not show a percentage, got %q", view.Items[1].Discount)
	}

	noDiscount := sampleData()
	noDiscount.Items = []models.Item{{Description: "Beratung", Quantity: 2, UnitPrice: 100}}
	html, err := r.RenderHTML(Request{TemplateID: "corporate-quote", Data: noDiscount})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "discount-column") {
		t.Error("discount column rendered without any discounted item")
	}
}

func TestInvoiceTaxLineGating(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	tests := []struct {
		name    string
		mutate  func(*models.DocumentData)
		wantTax bool
	}{
		{"regular", func(*models.DocumentData) {}, true},
		{"small business", func(d *models.DocumentData) { d.IsSmallBusiness = true }, false},
		{"reverse charge", func(d *models.DocumentData) { d.ReverseCharge = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleData()
			tt.mutate(d)
			html, err := r.RenderHTML(Request{TemplateID: "corporate-invoice", Data: d})
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Contains(html, "tax-line"); got != tt.wantTax {
				t.Fatalf("tax line present = %v, want %v", got, tt.wantTax)
			}
		})
	}
}

func TestQuoteTaxLineIgnoresSmallBusiness(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	d := sampleData()
	d.IsSmallBusiness = true
	html, err := r.RenderHTML(Request{TemplateID: "tech-quote", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "tax-line") {
		t.Fatal("quote with positive tax rate must show the tax line")
	}
	if strings.Contains(html, "section-tax-notice") {
		t.Fatal("quotes carry no tax notice")
	}

	d.TaxRate = 0
	html, err = r.RenderHTML(Request{TemplateID: "tech-quote", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "tax-line") {
		t.Fatal("quote without tax rate must hide the tax line")
	}
}

func TestInvoiceTaxNotice(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	d := sampleData()
	d.IsSmallBusiness = true
	d.TaxRule = models.TaxRuleDEReverse13b
	html, err := r.RenderHTML(Request{TemplateID: "minimalist-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "§ 13b UStG") {
		t.Fatal("tax rule must win over the small-business flag")
	}
	if strings.Contains(html, "§ 19 UStG") {
		t.Fatal("only one notice may be printed")
	}
}

func TestAddressUnion(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	d := sampleData()
	d.CustomerAddress = models.NewAddressString("Postfach 12 34, 20095 Hamburg")
	view, err := r.View(Request{TemplateID: "executive-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Customer.AddressLines) != 1 || view.Customer.AddressLines[0] != "Postfach 12 34, 20095 Hamburg" {
		t.Fatalf("string address lines = %q", view.Customer.AddressLines)
	}

	d.CustomerAddress = models.Address{Street: "Hauptstraße 5", ZipCode: "80331", City: "München"}
	view, err = r.View(Request{TemplateID: "executive-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(view.Customer.AddressLines, "\n") != "Hauptstraße 5\n80331 München" {
		t.Fatalf("structured address lines = %q", view.Customer.AddressLines)
	}
}

func TestLogoPrecedenceInOutput(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	d := sampleData()
	d.CompanyLogo = "https://cdn.example.de/record.png"
	html, err := r.RenderHTML(Request{
		TemplateID:      "creative-invoice",
		Data:            d,
		CompanySettings: sampleSettings(),
		Customizations:  &models.TemplateCustomizations{LogoURL: "https://cdn.example.de/override.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "override.png") || strings.Contains(html, "record.png") {
		t.Fatal("customization logo must win")
	}

	html, err = r.RenderHTML(Request{
		TemplateID:     "creative-invoice",
		Data:           d,
		Customizations: &models.TemplateCustomizations{ShowLogo: ptr(false)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, `class="logo"`) {
		t.Fatal("hidden logo rendered")
	}
}

func TestDeliveryNoteHasNoPricesButSignatures(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	html, err := r.RenderHTML(Request{TemplateID: "professional-business-delivery", Data: sampleData(), CompanySettings: sampleSettings()})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "section-totals") || strings.Contains(html, "Einzelpreis") {
		t.Fatal("delivery notes must not print prices")
	}
	if !strings.Contains(html, "section-signature") {
		t.Fatal("delivery notes need signature lines")
	}
	if !strings.Contains(html, "DE02120300000000202051") {
		t.Fatal("company footer must come from the settings")
	}
}

func TestMarkupTrustBoundary(t *testing.T) {
	d := sampleData()
	d.HeadTextHTML = "<p><b>Sehr geehrte Damen und Herren</b></p>"

	trusted := newTestRenderer(t, DefaultConfig())
	html, err := trusted.RenderHTML(Request{TemplateID: "classic-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, d.HeadTextHTML) {
		t.Fatal("trusted head text must be injected raw")
	}

	escaped := newTestRenderer(t, Config{TrustMarkup: false})
	html, err = escaped.RenderHTML(Request{TemplateID: "classic-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<b>Sehr") {
		t.Fatal("untrusted head text must be escaped")
	}
}

func TestMalformedDateEchoed(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	d := sampleData()
	d.Date = "Mitte März"
	view, err := r.View(Request{TemplateID: "tech-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if view.Date != "Mitte März" {
		t.Fatalf("date = %q, want verbatim echo", view.Date)
	}
}

func TestCurrencyOverride(t *testing.T) {
	r := newTestRenderer(t, Config{TrustMarkup: true, DefaultCurrency: "EUR"})
	d := sampleData()
	d.Currency = "USD"
	view, err := r.View(Request{TemplateID: "tech-invoice", Data: d})
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasSuffix(view.Totals.Total, "€") {
		t.Fatalf("total = %q, record currency must override the default", view.Totals.Total)
	}
}

func TestRenderErrors(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	_, err := r.RenderHTML(Request{TemplateID: "nope", Data: sampleData()})
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) || rerr.TemplateID != "nope" {
		t.Fatalf("expected RenderError for template nope, got %v", err)
	}
	if _, err := r.RenderHTML(Request{TemplateID: "tech-invoice"}); !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData, got %v", err)
	}
}

func TestRenderDoesNotMutateRecord(t *testing.T) {
	r := newTestRenderer(t, DefaultConfig())
	d := sampleData()
	before := *d
	beforeItems := append([]models.Item(nil), d.Items...)
	if _, err := r.RenderHTML(Request{TemplateID: "creative-quote", Data: d}); err != nil {
		t.Fatal(err)
	}
	if d.DocumentNumber != before.DocumentNumber || d.Total != before.Total || len(d.Items) != len(beforeItems) {
		t.Fatal("record changed during render")
	}
	for i := range beforeItems {
		if d.Items[i].Description != beforeItems[i].Description || d.Items[i].UnitPrice != beforeItems[i].UnitPrice {
			t.Fatal("items changed during render")
		}
	}
}
