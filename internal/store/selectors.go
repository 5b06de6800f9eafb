package store

import (
	"attrpicker/internal/catalog"
	"attrpicker/internal/match"
)

// Attributes returns the catalog.
func Attributes(r Reader) []catalog.Attribute {
	return r.Snapshot().Attributes
}

// AvailableAttributes returns the catalog minus attributes already attached
// to the product.
func AvailableAttributes(r Reader) []catalog.Attribute {
	s := r.Snapshot()
	taken := make(map[int64]bool, len(s.Selected))
	for _, sel := range s.Selected {
		if !sel.Local {
			taken[sel.Attribute.ID] = true
		}
	}
	out := make([]catalog.Attribute, 0, len(s.Attributes))
	for _, a := range s.Attributes {
		if taken[a.ID] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// AttributeOptions returns AvailableAttributes as combobox options.
func AttributeOptions(r Reader) []match.Option {
	return catalog.Options(AvailableAttributes(r))
}

// Selected returns the attributes attached to the product.
func Selected(r Reader) []Selection {
	return r.Snapshot().Selected
}

// Notices returns pending notices, oldest first.
func Notices(r Reader) []Notice {
	return r.Snapshot().Notices
}

// LatestNotice returns the newest notice.
func LatestNotice(r Reader) (Notice, bool) {
	n := r.Snapshot().Notices
	if len(n) == 0 {
		return Notice{}, false
	}
	return n[len(n)-1], true
}
