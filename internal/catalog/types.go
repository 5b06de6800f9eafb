package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"attrpicker/internal/match"
)

// CreateOptionValue is the option value of the synthetic "Create ..." entry.
// It never collides with OptionValue output, which always carries a prefix.
const CreateOptionValue = "create-attribute"

const optionValuePrefix = "attr-"

// Attribute is a global product attribute such as "Color" or "Size".
type Attribute struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Disabled bool   `json:"-"`
}

// OptionValue is the combobox value for an attribute.
func OptionValue(id int64) string {
	return optionValuePrefix + strconv.FormatInt(id, 10)
}

// ParseOptionValue extracts the attribute id from an option value.
func ParseOptionValue(v string) (int64, bool) {
	if !strings.HasPrefix(v, optionValuePrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(v, optionValuePrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ToOption maps an attribute onto a selectable option.
func (a Attribute) ToOption() match.Option {
	return match.Option{
		Label:    a.Name,
		Value:    OptionValue(a.ID),
		Disabled: a.Disabled,
	}
}

// Options maps attributes onto options, preserving order.
func Options(attrs []Attribute) []match.Option {
	out := make([]match.Option, len(attrs))
	for i, a := range attrs {
		out[i] = a.ToOption()
	}
	return out
}

// Find returns the attribute with the given id.
func Find(attrs []Attribute, id int64) (Attribute, bool) {
	for _, a := range attrs {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}

// Slugify derives a URL-safe slug from an attribute name.
func Slugify(name string) string {
	normalized := match.Normalize(name)
	var b strings.Builder
	dash := false
	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s (#%d)", a.Name, a.ID)
}
