// Package catalog serves the browsable menu data: categories, restaurants
// and their dishes.
package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("catalog: not found")

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type Dish struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Type        string          `json:"type"` // veg | non-veg
	Rating      float64         `json:"rating"`
	CategoryID  string          `json:"categoryId"`
}

type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image,omitempty"`
	Rating       float64  `json:"rating"`
	Distance     string   `json:"distance"`
	DeliveryTime string   `json:"deliveryTime"`
	Cuisines     []string `json:"cuisines"`
	CategoryIDs  []string `json:"categories"`
	Dishes       []Dish   `json:"dishes"`
}

// MemoryCatalog is the in-memory catalog the storefront browses when no
// remote catalog backend is configured.
type MemoryCatalog struct {
	categories  []Category
	restaurants []Restaurant
}

func NewMemoryCatalog(categories []Category, restaurants []Restaurant) *MemoryCatalog {
	return &MemoryCatalog{categories: categories, restaurants: restaurants}
}

func (c *MemoryCatalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *MemoryCatalog) CategoryByID(id string) (*Category, error) {
	for i := range c.categories {
		if c.categories[i].ID == id {
			cp := c.categories[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (c *MemoryCatalog) Restaurants() []Restaurant {
	return append([]Restaurant(nil), c.restaurants...)
}

func (c *MemoryCatalog) RestaurantsByCategory(categoryID string) []Restaurant {
	var out []Restaurant
	for _, r := range c.restaurants {
		for _, cid := range r.CategoryIDs {
			if cid == categoryID {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// RestaurantByID returns the restaurant; when categoryID is non-empty the
// dish list is narrowed to that category.
func (c *MemoryCatalog) RestaurantByID(id, categoryID string) (*Restaurant, error) {
	for i := range c.restaurants {
		if c.restaurants[i].ID != id {
			continue
		}
		cp := c.restaurants[i]
		cp.Dishes = append([]Dish(nil), cp.Dishes...)
		if categoryID != "" {
			dishes := cp.Dishes[:0]
			for _, d := range cp.Dishes {
				if d.CategoryID == categoryID {
					dishes = append(dishes, d)
				}
			}
			cp.Dishes = dishes
		}
		return &cp, nil
	}
	return nil, ErrNotFound
}

// Search matches the query against restaurant names and cuisines,
// case-insensitively. An empty query returns everything.
func (c *MemoryCatalog) Search(query string) []Restaurant {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Restaurants()
	}
	var out []Restaurant
	for _, r := range c.restaurants {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
			continue
		}
		for _, cuisine := range r.Cuisines {
			if strings.Contains(strings.ToLower(cuisine), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// RestaurantName implements the order service's name lookup.
func (c *MemoryCatalog) RestaurantName(id string) (string, bool) {
	for _, r := range c.restaurants {
		if r.ID == id {
			return r.Name, true
		}
	}
	return "", false
}

// DishByID searches every restaurant's menu; the restaurant id comes back
// with the dish so the cart can record where the line came from.
func (c *MemoryCatalog) DishByID(id string) (*Dish, string, error) {
	for _, r := range c.restaurants {
		for i := range r.Dishes {
			if r.Dishes[i].ID == id {
				cp := r.Dishes[i]
				return &cp, r.ID, nil
			}
		}
	}
	return nil, "", ErrNotFound
}
