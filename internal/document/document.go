// Package document holds the rules every document template shares.
//
// The functions here are pure: they never mutate the record, never return errors for bad
// content and never read configuration. Templates call them instead of repeating the logic.
//
// Shared rules:
//   - ResolveLogo: customizations → company settings → record fallbacks
//   - LineTotal: per-line total including the discount sentinel
//   - ShowTaxLine: tax-line gating, which differs between invoices and quotes
//   - ResolveTaxNotice: the legal tax disclaimer printed on invoices
//   - FormatDate, FormatCurrency, FormatAddress: German presentation helpers
package document

import (
	"bizdocs/pkg/models"
)

// ResolveLogo returns the logo URL to render, or "" when no logo should be shown.
// The first non-empty source wins: customizations, company settings, the record's company
// logo, the record's profile picture. An explicit ShowLogo=false suppresses the logo.
func ResolveLogo(data *models.DocumentData, settings *models.CompanySettings, custom *models.TemplateCustomizations) string {
	if custom != nil && custom.ShowLogo != nil && !*custom.ShowLogo {
		return ""
	}
	if custom != nil && custom.LogoURL != "" {
		return custom.LogoURL
	}
	if settings != nil && settings.LogoURL != "" {
		return settings.LogoURL
	}
	if data == nil {
		return ""
	}
	if data.CompanyLogo != "" {
		return data.CompanyLogo
	}
	return data.ProfilePictureURL
}

// DiscountFactor is the multiplier applied to quantity*unitPrice for one item.
// A discount-category line always counts fully negative and ignores DiscountPercent.
func DiscountFactor(item models.Item) float64 {
	if item.IsDiscount() {
		return -1
	}
	pct := 0.0
	if item.DiscountPercent != nil {
		pct = *item.DiscountPercent
	}
	return 1 - pct/100
}

// LineTotal computes quantity * unitPrice * DiscountFactor(item).
func LineTotal(item models.Item) float64 {
	return item.Quantity * item.UnitPrice * DiscountFactor(item)
}

// DisplayedLineTotal is the amount a template prints in the total column.
// Invoices show the upstream total when one was supplied; everything else uses LineTotal.
func DisplayedLineTotal(kind models.DocumentKind, item models.Item) float64 {
	if kind == models.KindInvoice && item.Total != nil {
		return *item.Total
	}
	return LineTotal(item)
}

// HasDiscountColumn reports whether any item carries a positive discount percentage.
func HasDiscountColumn(items []models.Item) bool {
	for _, it := range items {
		if it.DiscountPercent != nil && *it.DiscountPercent > 0 {
			return true
		}
	}
	return false
}

// ShowTaxLine reports whether the totals block prints a tax line.
//
// Invoices hide it for small businesses and reverse charge, even when a tax amount is supplied.
// Quotes only look at the tax rate. Delivery notes have no totals block.
func ShowTaxLine(kind models.DocumentKind, data *models.DocumentData) bool {
	if data == nil {
		return false
	}
	switch kind {
	case models.KindInvoice:
		return !(data.IsSmallBusiness || data.ReverseCharge)
	case models.KindQuote:
		return data.TaxRate > 0
	default:
		return false
	}
}

// ShowsPrices reports whether a family prints prices and totals at all.
func ShowsPrices(kind models.DocumentKind) bool {
	return kind != models.KindDeliveryNote
}
