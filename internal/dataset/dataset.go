// Package dataset declares the e-commerce datasets: their source files,
// collections, schema descriptors, row transforms and indexes.
package dataset

import (
	"fmt"

	"ecomload/internal/domain"
	"ecomload/internal/ingest"
)

// Dataset names, in the order "all" ingests them.
const (
	Customers  = "customers"
	Products   = "products"
	Orders     = "orders"
	OrderItems = "order_items"
)

// DefaultSources maps each dataset to its file name in the data directory.
var DefaultSources = map[string]string{
	Customers:  "olist_customers_dataset.csv",
	Products:   "olist_products_dataset.csv",
	Orders:     "olist_orders_dataset.csv",
	OrderItems: "olist_order_items_dataset.csv",
}

// Names returns every dataset name in ingest order.
func Names() []string {
	return []string{Customers, Products, Orders, OrderItems}
}

// Sources overrides DefaultSources per dataset.
type Sources map[string]string

// Location returns the configured location of a dataset's file.
func (s Sources) Location(name string) string {
	if loc, ok := s[name]; ok && loc != "" {
		return loc
	}
	return DefaultSources[name]
}

// Build returns a fresh Spec for the named dataset. Specs carry per-run
// state (the orders join grouping), so build one per run.
func Build(name string, sources Sources) (*ingest.Spec, error) {
	switch name {
	case Customers:
		return CustomerSpec(sources.Location(Customers)), nil
	case Products:
		return ProductSpec(sources.Location(Products)), nil
	case Orders:
		return OrderSpec(sources.Location(Orders), sources.Location(OrderItems)), nil
	case OrderItems:
		return OrderItemSpec(sources.Location(OrderItems)), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, name)
}

// Resolve expands "all" and checks every name, preserving ingest order for "all".
func Resolve(names []string) ([]string, error) {
	if len(names) == 0 {
		return Names(), nil
	}
	var out []string
	for _, n := range names {
		if n == "all" {
			return Names(), nil
		}
		if _, ok := DefaultSources[n]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, n)
		}
		out = append(out, n)
	}
	return out, nil
}
