package render

import "html/template"

// Layout selects how line items are arranged.
type Layout string

const (
	LayoutTable   Layout = "table"   // classic table with columns
	LayoutCards   Layout = "cards"   // one card per item
	LayoutStacked Layout = "stacked" // letter-style sections, items as rows
)

// Skin is the visual variant of the shared document template.
// Skins change arrangement and styling only; the field set is the same for all of them.
type Skin struct {
	Name        string
	Layout      Layout
	HeaderStyle string // band, split, centered
	Accent      template.CSS
	Text        template.CSS
	Font        template.CSS
	Border      template.CSS
	Shadow      bool
	Uppercase   bool
	Dense       bool
}

var skins = map[string]Skin{
	"professional": {
		Name:        "professional",
		Layout:      LayoutTable,
		HeaderStyle: "split",
		Accent:      "#1f3a5f",
		Text:        "#1f2933",
		Font:        `"Helvetica Neue", Arial, sans-serif`,
		Border:      "1px solid #d9e2ec",
	},
	"corporate": {
		Name:        "corporate",
		Layout:      LayoutTable,
		HeaderStyle: "band",
		Accent:      "#0b5cab",
		Text:        "#102a43",
		Font:        `"Segoe UI", Roboto, Arial, sans-serif`,
		Border:      "1px solid #bcccdc",
		Uppercase:   true,
	},
	"minimalist": {
		Name:        "minimalist",
		Layout:      LayoutStacked,
		HeaderStyle: "split",
		Accent:      "#111111",
		Text:        "#333333",
		Font:        `"Inter", "Helvetica Neue", Arial, sans-serif`,
		Border:      "1px solid #eeeeee",
	},
	"executive": {
		Name:        "executive",
		Layout:      LayoutTable,
		HeaderStyle: "centered",
		Accent:      "#3d2b1f",
		Text:        "#1b1b1b",
		Font:        `Georgia, "Times New Roman", serif`,
		Border:      "2px solid #3d2b1f",
		Uppercase:   true,
	},
	"creative": {
		Name:        "creative",
		Layout:      LayoutCards,
		HeaderStyle: "band",
		Accent:      "#c2185b",
		Text:        "#222222",
		Font:        `"Poppins", "Helvetica Neue", Arial, sans-serif`,
		Border:      "1px solid #f8bbd0",
		Shadow:      true,
	},
	"tech": {
		Name:        "tech",
		Layout:      LayoutTable,
		HeaderStyle: "band",
		Accent:      "#00a37a",
		Text:        "#0f172a",
		Font:        `"JetBrains Mono", "Fira Code", Menlo, monospace`,
		Border:      "1px solid #cbd5e1",
		Dense:       true,
	},
	"classic": {
		Name:        "classic",
		Layout:      LayoutStacked,
		HeaderStyle: "split",
		Accent:      "#000000",
		Text:        "#000000",
		Font:        `Arial, Helvetica, sans-serif`,
		Border:      "1px solid #000000",
	},
}

// SkinByName returns the style table entry for a registry skin name.
func SkinByName(name string) (Skin, bool) {
	s, ok := skins[name]
	return s, ok
}
