package render

import (
	"html/template"
	"strings"

	"bizdocs/internal/document"
	"bizdocs/internal/registry"
	"bizdocs/pkg/models"
)

// Request is everything one render needs. CompanySettings and Customizations are optional.
type Request struct {
	TemplateID      string                         `json:"templateId"`
	Data            *models.DocumentData           `json:"data"`
	CompanySettings *models.CompanySettings        `json:"companySettings,omitempty"`
	Customizations  *models.TemplateCustomizations `json:"customizations,omitempty"`
}

// Field is a labelled value in a metadata or footer block.
type Field struct {
	Label string
	Value string
}

// CompanyView is the issuing company as printed in the header and footer.
type CompanyView struct {
	Name         string
	AddressLines []string
	Contact      []Field
	Legal        []Field
	Bank         []Field
}

// PartyView is the recipient block.
type PartyView struct {
	Name         string
	AddressLines []string
}

// ItemView is one formatted line item.
type ItemView struct {
	Position    int
	Description string
	Details     string
	Quantity    string
	Unit        string
	UnitPrice   string
	Discount    string
	Total       string
	IsDiscount  bool
}

// TotalsView is the formatted totals block.
type TotalsView struct {
	Subtotal string
	TaxLabel string
	Tax      string
	ShowTax  bool
	Total    string
}

// View is the projection of a document onto the shared template.
type View struct {
	Kind       models.DocumentKind
	Title      string
	TemplateID string
	Skin       Skin
	LogoURL    string
	Number     string
	DateLabel  string
	Date       string

	Company  CompanyView
	Customer PartyView
	Meta     []Field

	Items              []ItemView
	ShowPrices         bool
	ShowDiscountColumn bool
	Totals             TotalsView

	TaxNotice  string
	Notes      string
	HeadText   template.HTML
	FooterText template.HTML
	Signature  bool
}

type viewOptions struct {
	trustMarkup     bool
	defaultCurrency string
}

// buildView projects a request onto the view model of the given template entry.
// It only reads the request; the record is never modified.
func buildView(entry registry.Entry, skin Skin, req Request, opts viewOptions) View {
	data := req.Data
	kind := entry.Kind

	cur := data.Currency
	if cur == "" {
		cur = opts.defaultCurrency
	}
	money := func(v float64) string { return document.FormatCurrency(v, cur) }

	v := View{
		Kind:       kind,
		Title:      kind.Title(),
		TemplateID: entry.ID,
		Skin:       skin,
		LogoURL:    document.ResolveLogo(data, req.CompanySettings, req.Customizations),
		Number:     data.DocumentNumber,
		DateLabel:  dateLabel(kind),
		Date:       document.FormatDate(data.Date),
		Company:    companyView(req.CompanySettings),
		Customer: PartyView{
			Name:         data.CustomerName,
			AddressLines: splitLines(document.FormatAddress(data.CustomerAddress)),
		},
		Meta:               metaFields(kind, data),
		ShowPrices:         document.ShowsPrices(kind),
		ShowDiscountColumn: kind != models.KindDeliveryNote && document.HasDiscountColumn(data.Items),
		TaxNotice:          document.TaxNoticeFor(kind, data).Text(),
		Notes:              data.Notes,
		HeadText:           document.Markup(data.HeadTextHTML, opts.trustMarkup),
		FooterText:         document.Markup(data.FooterText, opts.trustMarkup),
		Signature:          kind == models.KindDeliveryNote,
	}

	v.Items = make([]ItemView, 0, len(data.Items))
	for i, it := range data.Items {
		iv := ItemView{
			Position:    i + 1,
			Description: it.Description,
			Details:     it.Details,
			Quantity:    document.FormatQuantity(it.Quantity),
			Unit:        it.Unit,
			UnitPrice:   money(it.UnitPrice),
			Total:       money(document.DisplayedLineTotal(kind, it)),
			IsDiscount:  it.IsDiscount(),
		}
		if it.DiscountPercent != nil && *it.DiscountPercent > 0 && !it.IsDiscount() {
			iv.Discount = document.FormatPercent(*it.DiscountPercent)
		}
		v.Items = append(v.Items, iv)
	}

	if v.ShowPrices {
		v.Totals = TotalsView{
			Subtotal: money(data.Subtotal),
			ShowTax:  document.ShowTaxLine(kind, data),
			TaxLabel: "USt. " + document.FormatPercent(data.TaxRate),
			Tax:      money(data.TaxAmount),
			Total:    money(data.Total),
		}
	}
	return v
}

func dateLabel(kind models.DocumentKind) string {
	switch kind {
	case models.KindQuote:
		return "Angebotsdatum"
	case models.KindDeliveryNote:
		return "Datum"
	default:
		return "Rechnungsdatum"
	}
}

func metaFields(kind models.DocumentKind, d *models.DocumentData) []Field {
	var fields []Field
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fields = append(fields, Field{Label: label, Value: value})
		}
	}

	switch kind {
	case models.KindInvoice:
		add("Fällig am", document.FormatDate(d.DueDate))
		add("Leistungsdatum", document.FormatDate(d.ServiceDate))
		add("Leistungszeitraum", d.ServicePeriod)
		add("Kundennummer", d.CustomerNumber)
		add("Bestellnummer", d.OrderNumber)
		add("Zahlungsbedingungen", d.PaymentTerms)
	case models.KindQuote:
		add("Gültig bis", document.FormatDate(d.ValidUntil))
		add("Leistungszeitraum", d.ServicePeriod)
		add("Kundennummer", d.CustomerNumber)
		add("Zahlungsbedingungen", d.PaymentTerms)
		add("Lieferbedingungen", d.DeliveryTerms)
	case models.KindDeliveryNote:
		add("Lieferdatum", document.FormatDate(d.DeliveryDate))
		add("Leistungsdatum", document.FormatDate(d.ServiceDate))
		add("Bestellnummer", d.OrderNumber)
		add("Kundennummer", d.CustomerNumber)
		add("Lieferbedingungen", d.DeliveryTerms)
	}
	add("Ansprechpartner", d.Author)
	return fields
}

func companyView(s *models.CompanySettings) CompanyView {
	if s == nil {
		return CompanyView{}
	}
	cv := CompanyView{
		Name:         s.Name,
		AddressLines: splitLines(document.FormatAddress(s.Address)),
	}
	appendField := func(dst []Field, label, value string) []Field {
		if value == "" {
			return dst
		}
		return append(dst, Field{Label: label, Value: value})
	}
	cv.Contact = appendField(cv.Contact, "Telefon", s.Phone)
	cv.Contact = appendField(cv.Contact, "E-Mail", s.Email)
	cv.Contact = appendField(cv.Contact, "Web", s.Website)

	cv.Legal = appendField(cv.Legal, "Geschäftsführer", s.ManagingDirector)
	cv.Legal = appendField(cv.Legal, "Handelsregister", s.CommercialRegister)
	cv.Legal = appendField(cv.Legal, "Steuernummer", s.TaxNumber)
	cv.Legal = appendField(cv.Legal, "USt-IdNr.", s.VATID)

	cv.Bank = appendField(cv.Bank, "Bank", s.BankName)
	cv.Bank = appendField(cv.Bank, "IBAN", s.IBAN)
	cv.Bank = appendField(cv.Bank, "BIC", s.BIC)
	return cv
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
