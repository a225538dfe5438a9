// Package registry lists the document templates of every family.
//
// Template IDs are persisted as user preferences. Renaming or removing an ID breaks stored
// selections, so new skins are appended and existing IDs stay as they are.
package registry

import (
	"bizdocs/pkg/models"
)

// Entry describes one selectable template.
type Entry struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Kind        models.DocumentKind `json:"kind"`
	Skin        string              `json:"skin"`
}

var invoiceTemplates = []Entry{
	{ID: "professional-business-invoice", Name: "Professional Business", Description: "Klassisches Geschäftslayout mit Firmenkopf, Tabellenpositionen und Bankverbindung im Fuß.", Skin: "professional"},
	{ID: "corporate-invoice", Name: "Corporate", Description: "Farbiges Kopfband, zweispaltige Adressblöcke und hervorgehobene Summen.", Skin: "corporate"},
	{ID: "minimalist-invoice", Name: "Minimalistisch", Description: "Viel Weißraum, feine Linien und reduzierte Typografie.", Skin: "minimalist"},
	{ID: "executive-invoice", Name: "Executive", Description: "Serifenschrift, zentrierter Kopf und kräftige Rahmen.", Skin: "executive"},
	{ID: "creative-invoice", Name: "Kreativ", Description: "Positionen als Karten mit Schatten und farbigen Akzenten.", Skin: "creative"},
	{ID: "tech-invoice", Name: "Tech", Description: "Monospace-Details, dunkler Kopf und kompakte Tabelle.", Skin: "tech"},
	{ID: "classic-invoice", Name: "Klassisch", Description: "Gestapelte Abschnitte im Stil eines DIN-Briefs.", Skin: "classic"},
}

var quoteTemplates = []Entry{
	{ID: "professional-business-quote", Name: "Professional Business", Description: "Angebot im klassischen Geschäftslayout mit Gültigkeitsdatum im Kopf.", Skin: "professional"},
	{ID: "corporate-quote", Name: "Corporate", Description: "Farbiges Kopfband und hervorgehobene Angebotssumme.", Skin: "corporate"},
	{ID: "minimalist-quote", Name: "Minimalistisch", Description: "Reduziertes Angebot mit feinen Linien.", Skin: "minimalist"},
	{ID: "executive-quote", Name: "Executive", Description: "Serifenschrift und zentrierter Kopf für repräsentative Angebote.", Skin: "executive"},
	{ID: "creative-quote", Name: "Kreativ", Description: "Leistungen als Karten mit Rabattangaben je Position.", Skin: "creative"},
	{ID: "tech-quote", Name: "Tech", Description: "Kompaktes Angebot für Software- und IT-Leistungen.", Skin: "tech"},
}

var deliveryTemplates = []Entry{
	{ID: "professional-business-delivery", Name: "Professional Business", Description: "Lieferschein mit Positionsliste und Unterschriftenfeldern.", Skin: "professional"},
	{ID: "corporate-delivery", Name: "Corporate", Description: "Farbiges Kopfband und Lieferdaten im Seitenblock.", Skin: "corporate"},
	{ID: "minimalist-delivery", Name: "Minimalistisch", Description: "Schlichter Lieferschein mit Mengenangaben.", Skin: "minimalist"},
	{ID: "executive-delivery", Name: "Executive", Description: "Serifenschrift und kräftige Rahmen.", Skin: "executive"},
	{ID: "creative-delivery", Name: "Kreativ", Description: "Positionen als Karten, geeignet für Projektlieferungen.", Skin: "creative"},
	{ID: "tech-delivery", Name: "Tech", Description: "Kompakte Liste für Hardware- und Gerätelieferungen.", Skin: "tech"},
}

var families = map[models.DocumentKind][]Entry{
	models.KindInvoice:      withKind(invoiceTemplates, models.KindInvoice),
	models.KindQuote:        withKind(quoteTemplates, models.KindQuote),
	models.KindDeliveryNote: withKind(deliveryTemplates, models.KindDeliveryNote),
}

func withKind(entries []Entry, kind models.DocumentKind) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Kind = kind
		out[i] = e
	}
	return out
}

// ByKind returns the ordered templates of one family. The slice is a copy.
func ByKind(kind models.DocumentKind) []Entry {
	return append([]Entry(nil), families[kind]...)
}

// All returns every template, grouped by family in models.Kinds order.
func All() []Entry {
	var out []Entry
	for _, kind := range models.Kinds {
		out = append(out, families[kind]...)
	}
	return out
}

// Lookup finds a template by its stable ID.
func Lookup(id string) (Entry, bool) {
	for _, kind := range models.Kinds {
		for _, e := range families[kind] {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Default returns the first template of a family.
func Default(kind models.DocumentKind) (Entry, bool) {
	entries := families[kind]
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}
