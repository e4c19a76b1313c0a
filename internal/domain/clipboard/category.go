package clipboard

import (
	"errors"
	"strings"
)

// Category classifies a clipboard item for display.
// INVARIANT: the set is closed; valid codes are 0 through 6.
type Category int

// Category codes. The numeric values are persisted and must not change.
const (
	CategoryText Category = iota
	CategoryCode
	CategoryLink
	CategoryEmail
	CategoryPhone
	CategoryColor
	CategoryImage
)

// categoryCount is the number of valid Category codes.
const categoryCount = 7

// ErrInvalidCategory is returned for codes or names outside the closed set.
var ErrInvalidCategory = errors.New("clipboard category must be one of: text, code, link, email, phone, color, image")

// Descriptor is the static display metadata of a Category.
type Descriptor struct {
	Name  string // human-readable label
	Icon  string // SF Symbols identifier
	Color string // colour preset name
}

// Colour presets used by category descriptors.
const (
	ColorBlue   = "blue"
	ColorPurple = "purple"
	ColorGreen  = "green"
	ColorOrange = "orange"
	ColorTeal   = "teal"
	ColorPink   = "pink"
	ColorRed    = "red"
)

// ColorHex maps preset names to hex values.
var ColorHex = map[string]string{
	ColorBlue:   "#2980b9",
	ColorPurple: "#8e44ad",
	ColorGreen:  "#27ae60",
	ColorOrange: "#F9B232",
	ColorTeal:   "#16a085",
	ColorPink:   "#e84393",
	ColorRed:    "#e74c3c",
}

var descriptors = [categoryCount]Descriptor{
	CategoryText:  {Name: "Text", Icon: "doc.text", Color: ColorBlue},
	CategoryCode:  {Name: "Code", Icon: "chevron.left.forwardslash.chevron.right", Color: ColorPurple},
	CategoryLink:  {Name: "Link", Icon: "link", Color: ColorGreen},
	CategoryEmail: {Name: "Email", Icon: "envelope", Color: ColorOrange},
	CategoryPhone: {Name: "Phone", Icon: "phone", Color: ColorTeal},
	CategoryColor: {Name: "Color", Icon: "paintpalette", Color: ColorPink},
	CategoryImage: {Name: "Image", Icon: "photo", Color: ColorRed},
}

var categoryKeys = [categoryCount]string{
	CategoryText:  "text",
	CategoryCode:  "code",
	CategoryLink:  "link",
	CategoryEmail: "email",
	CategoryPhone: "phone",
	CategoryColor: "color",
	CategoryImage: "image",
}

// unknownDescriptor is returned for codes outside the closed set.
var unknownDescriptor = Descriptor{Name: "Unknown", Icon: "questionmark.circle", Color: ColorBlue}

// Valid reports whether c is one of the seven defined codes.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// String returns the lower-case key of the category ("text", "code", ...).
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryKeys[c]
}

// Describe returns the display metadata of the category.
// PRE: none
// POST: for every valid code, returns a Descriptor with non-empty fields
func (c Category) Describe() Descriptor {
	if !c.Valid() {
		return unknownDescriptor
	}
	return descriptors[c]
}

// Describe is the function form of Category.Describe.
func Describe(c Category) Descriptor {
	return c.Describe()
}

// AllCategories returns every category in code order.
func AllCategories() []Category {
	all := make([]Category, categoryCount)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}

// ParseCategory converts a persisted integer code into a Category.
// PRE: none
// POST: returns ErrInvalidCategory if code is outside 0..6
func ParseCategory(code int) (Category, error) {
	c := Category(code)
	if !c.Valid() {
		return CategoryText, ErrInvalidCategory
	}
	return c, nil
}

// CategoryFromName resolves a key ("link") or display name ("Link"),
// case-insensitively.
func CategoryFromName(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, key := range categoryKeys {
		if name == key || name == strings.ToLower(descriptors[i].Name) {
			return Category(i), nil
		}
	}
	return CategoryText, ErrInvalidCategory
}
