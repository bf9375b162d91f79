package seed

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"admin-panel/internal/model"

	"github.com/shopspring/decimal"
)

// Document is the catalogue loaded on first start.
type Document struct {
	Categories []CategoryEntry `json:"categories"`
}

// CategoryEntry is a category together with the products filed under it.
type CategoryEntry struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Products    []ProductEntry `json:"products"`
}

// ProductEntry is a single seeded product.
type ProductEntry struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ProductCount returns the number of products across all categories.
func (d *Document) ProductCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Products)
	}
	return n
}

// Validate reports every malformed entry.
func (d *Document) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(d.Categories))

	for i, c := range d.Categories {
		name := strings.TrimSpace(c.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
		case seen[strings.ToLower(name)]:
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate category %q", i, name))
		}
		seen[strings.ToLower(name)] = true

		for j, p := range c.Products {
			if strings.TrimSpace(p.Name) == "" {
				errs = append(errs, fmt.Errorf("categories[%d].products[%d]: name is required", i, j))
			}
			if p.Price.IsNegative() {
				errs = append(errs, fmt.Errorf("categories[%d].products[%d]: price must not be negative", i, j))
			}
			if p.Stock < 0 {
				errs = append(errs, fmt.Errorf("categories[%d].products[%d]: stock must not be negative", i, j))
			}
		}
	}

	return errors.Join(errs...)
}

// categories returns the rows to insert, in document order.
func (d *Document) categories() []*model.Category {
	out := make([]*model.Category, 0, len(d.Categories))
	for _, c := range d.Categories {
		out = append(out, &model.Category{
			Name:        strings.TrimSpace(c.Name),
			Description: c.Description,
			IsActive:    true,
		})
	}
	return out
}

// products returns the rows to insert, bound to the stored category IDs.
// created must be the result of categories() after insertion.
func (d *Document) products(created []*model.Category) []*model.Product {
	out := make([]*model.Product, 0, d.ProductCount())
	for i, c := range d.Categories {
		for _, p := range c.Products {
			out = append(out, &model.Product{
				CategoryID:  created[i].ID,
				Name:        strings.TrimSpace(p.Name),
				Description: p.Description,
				Price:       p.Price,
				Stock:       p.Stock,
				IsActive:    true,
			})
		}
	}
	return out
}

// decode parses a seed document, gunzipping it when name ends in ".gz".
func decode(r io.Reader, name string) (*Document, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed document %s: %w", name, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed document %s: %w", name, err)
	}

	return &doc, nil
}
