package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentKind identifies a document family. Every template belongs to exactly one family.
type DocumentKind string

const (
	KindInvoice      DocumentKind = "invoice"       // Rechnung
	KindQuote        DocumentKind = "quote"         // Angebot
	KindDeliveryNote DocumentKind = "delivery-note" // Lieferschein
)

// Kinds lists the document families in display order.
var Kinds = []DocumentKind{KindInvoice, KindQuote, KindDeliveryNote}

// ParseKind accepts the canonical kind plus the German family names.
func ParseKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invoice", "rechnung":
		return KindInvoice, nil
	case "quote", "angebot":
		return KindQuote, nil
	case "delivery-note", "delivery", "lieferschein":
		return KindDeliveryNote, nil
	}
	return "", fmt.Errorf("unknown document kind %q (must be invoice, quote or delivery-note)", s)
}

// Title returns the German document title printed in the header.
func (k DocumentKind) Title() string {
	switch k {
	case KindQuote:
		return "Angebot"
	case KindDeliveryNote:
		return "Lieferschein"
	default:
		return "Rechnung"
	}
}

// TaxRule selects the legal tax treatment of an invoice. The empty value means no rule was set.
type TaxRule string

const (
	TaxRuleDEExempt4        TaxRule = "DE_EXEMPT_4_USTG"
	TaxRuleDEReverse13b     TaxRule = "DE_REVERSE_13B"
	TaxRuleEUReverse18b     TaxRule = "EU_REVERSE_18B"
	TaxRuleEUIntracommunity TaxRule = "EU_INTRACOMMUNITY_SUPPLY"
	TaxRuleEUOSS            TaxRule = "EU_OSS"
	TaxRuleNonEUExport      TaxRule = "NON_EU_EXPORT"
	TaxRuleNonEUOutOfScope  TaxRule = "NON_EU_OUT_OF_SCOPE"
)

// CategoryDiscount marks an item as a negative adjustment line instead of a sold item.
const CategoryDiscount = "discount"

// Address is either a pre-formatted string or a structured postal address.
// Both JSON forms decode into it; Raw is set only for the string form.
type Address struct {
	Raw     string `json:"-"`
	Street  string `json:"street,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// NewAddressString builds the pre-formatted variant.
func NewAddressString(s string) Address {
	return Address{Raw: s}
}

// IsStructured reports whether the address came in as an object.
func (a Address) IsStructured() bool {
	return a.Raw == "" && (a.Street != "" || a.ZipCode != "" || a.City != "" || a.Country != "")
}

// IsZero reports whether neither variant carries any content.
func (a Address) IsZero() bool {
	return a.Raw == "" && !a.IsStructured()
}

// UnmarshalJSON accepts a JSON string, an object, or null.
func (a *Address) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Address{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Address{Raw: s}
		return nil
	}
	type structured Address
	var s structured
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("address must be a string or an object: %w", err)
	}
	*a = Address(s)
	a.Raw = ""
	return nil
}

// MarshalJSON writes the variant the address was built from.
func (a Address) MarshalJSON() ([]byte, error) {
	if a.Raw != "" {
		return json.Marshal(a.Raw)
	}
	if a.IsZero() {
		return []byte("null"), nil
	}
	type structured Address
	return json.Marshal(structured(a))
}

// Item is one line of a document. Total is set by invoices, DiscountPercent by quotes.
type Item struct {
	Description     string   `json:"description"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit,omitempty"`
	UnitPrice       float64  `json:"unitPrice"`
	Total           *float64 `json:"total,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	Details         string   `json:"details,omitempty"`
	Category        string   `json:"category,omitempty"`
}

// IsDiscount reports whether the item is the negative adjustment sentinel.
func (it Item) IsDiscount() bool {
	return it.Category == CategoryDiscount
}

// DocumentData is the record shared by invoice, quote and delivery-note templates.
// Amounts are precomputed upstream and rendered as given.
type DocumentData struct {
	DocumentNumber string `json:"documentNumber"`

	Date          string `json:"date"`
	DueDate       string `json:"dueDate,omitempty"`
	ValidUntil    string `json:"validUntil,omitempty"`
	ServiceDate   string `json:"serviceDate,omitempty"`
	ServicePeriod string `json:"servicePeriod,omitempty"`
	DeliveryDate  string `json:"deliveryDate,omitempty"`

	CustomerName    string  `json:"customerName"`
	CustomerAddress Address `json:"customerAddress"`
	CustomerNumber  string  `json:"customerNumber,omitempty"`

	OrderNumber   string `json:"orderNumber,omitempty"`
	Author        string `json:"author,omitempty"`
	PaymentTerms  string `json:"paymentTerms,omitempty"`
	DeliveryTerms string `json:"deliveryTerms,omitempty"`
	Currency      string `json:"currency,omitempty"`

	Items []Item `json:"items"`

	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"taxRate"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`

	Notes        string `json:"notes,omitempty"`
	HeadTextHTML string `json:"headTextHtml,omitempty"`
	FooterText   string `json:"footerText,omitempty"`

	IsSmallBusiness bool    `json:"isSmallBusiness,omitempty"`
	ReverseCharge   bool    `json:"reverseCharge,omitempty"`
	TaxRule         TaxRule `json:"taxRule,omitempty"`

	CompanyLogo       string `json:"companyLogo,omitempty"`
	ProfilePictureURL string `json:"profilePictureURL,omitempty"`
}

// CompanySettings is the per-tenant record owned by the settings module.
type CompanySettings struct {
	Name               string  `json:"name"`
	Address            Address `json:"address"`
	Phone              string  `json:"phone,omitempty"`
	Email              string  `json:"email,omitempty"`
	Website            string  `json:"website,omitempty"`
	TaxNumber          string  `json:"taxNumber,omitempty"`          // Steuernummer
	VATID              string  `json:"vatId,omitempty"`              // USt-IdNr.
	ManagingDirector   string  `json:"managingDirector,omitempty"`   // Geschäftsführer
	CommercialRegister string  `json:"commercialRegister,omitempty"` // Handelsregister
	BankName           string  `json:"bankName,omitempty"`
	IBAN               string  `json:"iban,omitempty"`
	BIC                string  `json:"bic,omitempty"`
	LogoURL            string  `json:"logoUrl,omitempty"`
}

// TemplateCustomizations are per-render overrides that beat CompanySettings.
type TemplateCustomizations struct {
	LogoURL  string `json:"logoUrl,omitempty"`
	ShowLogo *bool  `json:"showLogo,omitempty"`
}
