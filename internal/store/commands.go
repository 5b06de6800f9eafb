package store

import (
	"fmt"
	"strings"

	"attrpicker/internal/catalog"
	appErrors "attrpicker/internal/errors"

	"github.com/google/uuid"
)

// Command is a state change. Implementations live in this package.
type Command interface {
	apply(s *State) error
}

// LoadAttributes replaces the catalog and drops selections whose global
// attribute disappeared.
type LoadAttributes struct {
	Attributes []catalog.Attribute
}

func (c LoadAttributes) apply(s *State) error {
	s.Attributes = append([]catalog.Attribute(nil), c.Attributes...)
	kept := s.Selected[:0]
	for _, sel := range s.Selected {
		if sel.Local {
			kept = append(kept, sel)
			continue
		}
		if _, ok := catalog.Find(s.Attributes, sel.Attribute.ID); ok {
			kept = append(kept, sel)
		}
	}
	s.Selected = kept
	return nil
}

// AddAttribute appends a newly created attribute to the catalog. Adding an
// id that is already present replaces it in place.
type AddAttribute struct {
	Attribute catalog.Attribute
}

func (c AddAttribute) apply(s *State) error {
	for i, a := range s.Attributes {
		if a.ID == c.Attribute.ID {
			s.Attributes[i] = c.Attribute
			return nil
		}
	}
	s.Attributes = append(s.Attributes, c.Attribute)
	return nil
}

// SelectAttribute attaches an attribute to the product. Global selections
// must reference a known attribute; local ones must carry a name.
type SelectAttribute struct {
	Attribute catalog.Attribute
	Local     bool
}

func (c SelectAttribute) apply(s *State) error {
	if c.Local {
		name := strings.TrimSpace(c.Attribute.Name)
		if name == "" {
			return appErrors.New(appErrors.CodeInvalidOption, "local attribute needs a name", nil)
		}
		for _, sel := range s.Selected {
			if sel.Local && strings.EqualFold(sel.Attribute.Name, name) {
				return nil
			}
		}
		attr := c.Attribute
		attr.Name = name
		s.Selected = append(s.Selected, Selection{Attribute: attr, Local: true})
		return nil
	}

	attr, ok := catalog.Find(s.Attributes, c.Attribute.ID)
	if !ok {
		return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("attribute %d not in catalog", c.Attribute.ID), nil)
	}
	if attr.Disabled {
		return appErrors.New(appErrors.CodeInvalidOption, fmt.Sprintf("attribute %q is disabled", attr.Name), nil)
	}
	for _, sel := range s.Selected {
		if !sel.Local && sel.Attribute.ID == attr.ID {
			return nil
		}
	}
	s.Selected = append(s.Selected, Selection{Attribute: attr})
	return nil
}

// RemoveSelection detaches the selection at Index.
type RemoveSelection struct {
	Index int
}

func (c RemoveSelection) apply(s *State) error {
	if c.Index < 0 || c.Index >= len(s.Selected) {
		return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("no selection at %d", c.Index), nil)
	}
	s.Selected = append(s.Selected[:c.Index], s.Selected[c.Index+1:]...)
	return nil
}

// PushNotice adds a notice. An empty ID is filled in.
type PushNotice struct {
	Notice Notice
}

func (c PushNotice) apply(s *State) error {
	n := c.Notice
	if strings.TrimSpace(n.Message) == "" {
		return nil
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	s.Notices = append(s.Notices, n)
	return nil
}

// DismissNotice removes the notice with ID. An empty ID dismisses the
// oldest notice.
type DismissNotice struct {
	ID string
}

func (c DismissNotice) apply(s *State) error {
	if len(s.Notices) == 0 {
		return nil
	}
	if c.ID == "" {
		s.Notices = s.Notices[1:]
		return nil
	}
	for i, n := range s.Notices {
		if n.ID == c.ID {
			s.Notices = append(s.Notices[:i], s.Notices[i+1:]...)
			return nil
		}
	}
	return nil
}
