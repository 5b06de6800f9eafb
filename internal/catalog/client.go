// Package catalog reads and creates global product attributes.
//
// Three Client implementations exist: a local SQLite catalog, a REST client
// for a WooCommerce store, and MockClient for tests.
package catalog

import "context"

// Client defines the attribute operations the picker needs.
type Client interface {
	ListAttributes(ctx context.Context) ([]Attribute, error)
	CreateAttribute(ctx context.Context, name string) (Attribute, error)
}
