package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Image     string          `json:"image"`
	Available Flag            `json:"available"`
}

// Flag decodes booleans stored as 0/1 integers as well as true/false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

// MenuTemplate is a named starter set for bulk import.
type MenuTemplate struct {
	Name  string
	Items []TemplateItem
}

type TemplateItem struct {
	Name     string
	Category string
}

var menuTemplates = map[string][]TemplateItem{
	"punjabi": {
		{"Paneer Butter Masala", "Main Course"},
		{"Dal Makhani", "Main Course"},
		{"Shahi Paneer", "Main Course"},
		{"Butter Roti", "Breads"},
		{"Naan", "Breads"},
		{"Jeera Rice", "Rice"},
		{"Lassi", "Beverages"},
	},
	"gujarati": {
		{"Gujarati Thali", "Main Course"},
		{"Undhiyu", "Main Course"},
		{"Thepla", "Breads"},
		{"Kadhi", "Curries"},
		{"Dhokla", "Snacks"},
		{"Shrikhand", "Dessert"},
	},
	"south_indian": {
		{"Masala Dosa", "Dosa"},
		{"Plain Dosa", "Dosa"},
		{"Idli Sambar", "Breakfast"},
		{"Vada", "Snacks"},
		{"Uttapam", "Dosa"},
		{"Filter Coffee", "Beverages"},
	},
	"chinese": {
		{"Veg Fried Rice", "Rice"},
		{"Veg Hakka Noodles", "Noodles"},
		{"Manchurian", "Starters"},
		{"Spring Rolls", "Starters"},
		{"Chilli Paneer", "Starters"},
	},
	"pizza": {
		{"Margherita Pizza", "Pizza"},
		{"Farmhouse Pizza", "Pizza"},
		{"Veg Burger", "Fast Food"},
		{"French Fries", "Snacks"},
		{"Cold Coffee", "Beverages"},
	},
}

func LookupMenuTemplate(name string) (MenuTemplate, error) {
	items, ok := menuTemplates[name]
	if !ok {
		return MenuTemplate{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	out := make([]TemplateItem, len(items))
	copy(out, items)
	return MenuTemplate{Name: name, Items: out}, nil
}

// DefaultImportPrice is used when a bulk import does not name a price.
var DefaultImportPrice = decimal.NewFromInt(100)
