package document

import "bizdocs/pkg/models"

// TaxNotice identifies which legal tax disclaimer an invoice carries.
type TaxNotice string

const (
	NoticeNone            TaxNotice = ""
	NoticeExempt          TaxNotice = "exempt"
	NoticeReverseCharge   TaxNotice = "reverse-charge"
	NoticeEUReverseCharge TaxNotice = "eu-reverse-charge"
	NoticeIntracommunity  TaxNotice = "intracommunity-supply"
	NoticeOSS             TaxNotice = "oss"
	NoticeExport          TaxNotice = "export"
	NoticeOutOfScope      TaxNotice = "out-of-scope"
	NoticeSmallBusiness   TaxNotice = "small-business"
)

var noticeTexts = map[TaxNotice]string{
	NoticeExempt:          "Steuerfreie Leistung gemäß § 4 UStG.",
	NoticeReverseCharge:   "Steuerschuldnerschaft des Leistungsempfängers gemäß § 13b UStG (Reverse Charge).",
	NoticeEUReverseCharge: "Steuerschuldnerschaft des Leistungsempfängers (Reverse Charge). Die Leistung ist im Inland nicht steuerbar; Meldung gemäß § 18b UStG.",
	NoticeIntracommunity:  "Steuerfreie innergemeinschaftliche Lieferung gemäß § 4 Nr. 1b i. V. m. § 6a UStG.",
	NoticeOSS:             "Die Umsatzsteuer wird im Bestimmungsland über das One-Stop-Shop-Verfahren (OSS) erklärt.",
	NoticeExport:          "Steuerfreie Ausfuhrlieferung gemäß § 4 Nr. 1a i. V. m. § 6 UStG.",
	NoticeOutOfScope:      "Nicht im Inland steuerbare Leistung.",
	NoticeSmallBusiness:   "Gemäß § 19 UStG wird keine Umsatzsteuer berechnet (Kleinunternehmerregelung).",
}

// Text returns the German sentence for the notice, or "" for NoticeNone.
func (n TaxNotice) Text() string {
	return noticeTexts[n]
}

// ResolveTaxNotice selects exactly one disclaimer, or none.
//
// The order is legally relevant and must not be rearranged:
// DE_EXEMPT_4_USTG, then DE_REVERSE_13B or reverse charge outside the small-business scheme,
// then the EU and export rules, then the small-business flag.
func ResolveTaxNotice(isSmallBusiness, reverseCharge bool, rule models.TaxRule) TaxNotice {
	switch {
	case rule == models.TaxRuleDEExempt4:
		return NoticeExempt
	case rule == models.TaxRuleDEReverse13b || (reverseCharge && !isSmallBusiness):
		return NoticeReverseCharge
	}

	switch rule {
	case models.TaxRuleEUReverse18b:
		return NoticeEUReverseCharge
	case models.TaxRuleEUIntracommunity:
		return NoticeIntracommunity
	case models.TaxRuleEUOSS:
		return NoticeOSS
	case models.TaxRuleNonEUExport:
		return NoticeExport
	case models.TaxRuleNonEUOutOfScope:
		return NoticeOutOfScope
	}

	if isSmallBusiness {
		return NoticeSmallBusiness
	}
	return NoticeNone
}

// TaxNoticeFor resolves the notice for a document. Only invoices carry one.
func TaxNoticeFor(kind models.DocumentKind, data *models.DocumentData) TaxNotice {
	if kind != models.KindInvoice || data == nil {
		return NoticeNone
	}
	return ResolveTaxNotice(data.IsSmallBusiness, data.ReverseCharge, data.TaxRule)
}
