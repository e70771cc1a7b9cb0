// Package catalog serves the static, read-only storefront menu.
package catalog

import (
	"strings"

	"foodie-storefront/models"
)

// Catalog maps a category id to its ordered items. It is built once at
// startup and never modified.
type Catalog struct {
	categories []models.Category
	items      map[string][]models.FoodItem
	byID       map[string]models.FoodItem
}

func New(categories []models.Category, items map[string][]models.FoodItem) *Catalog {
	c := &Catalog{
		categories: categories,
		items:      make(map[string][]models.FoodItem, len(items)),
		byID:       make(map[string]models.FoodItem),
	}
	for category, list := range items {
		copied := make([]models.FoodItem, len(list))
		for i, item := range list {
			item.Category = category
			copied[i] = item
			if _, seen := c.byID[item.ID]; !seen {
				c.byID[item.ID] = item
			}
		}
		c.items[category] = copied
	}
	return c
}

// Default returns the storefront's built-in menu
func Default() *Catalog {
	return New(defaultCategories, defaultItems())
}

func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Items returns the category's items; an unknown category yields an empty list
func (c *Catalog) Items(category string) []models.FoodItem {
	list := c.items[category]
	out := make([]models.FoodItem, len(list))
	copy(out, list)
	return out
}

// Search filters a category by a case-insensitive substring of name or description.
// An empty query returns the whole category.
func (c *Catalog) Search(category, query string) []models.FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Items(category)
	}
	out := []models.FoodItem{}
	for _, item := range c.items[category] {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			out = append(out, item)
		}
	}
	return out
}

// Lookup finds an item by id across all categories
func (c *Catalog) Lookup(id string) (models.FoodItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}
