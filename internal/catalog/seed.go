package catalog

import "github.com/shopspring/decimal"

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Seed is the demo dataset the storefront ships with.
func Seed() *MemoryCatalog {
	categories := []Category{
		{ID: "1", Name: "Biryani"},
		{ID: "2", Name: "Pizza"},
		{ID: "3", Name: "Burgers"},
		{ID: "4", Name: "Chinese"},
		{ID: "5", Name: "Desserts"},
		{ID: "6", Name: "South Indian"},
	}

	restaurants := []Restaurant{
		{
			ID: "1", Name: "Spice Garden", Rating: 4.5, Distance: "1.2 km", DeliveryTime: "25-30 min",
			Cuisines:    []string{"Indian", "North Indian", "Biryani"},
			CategoryIDs: []string{"1", "6"},
			Dishes: []Dish{
				{ID: "1", Name: "Chicken Biryani", Price: price(299), Description: "Aromatic basmati rice with tender chicken pieces", Type: "non-veg", Rating: 4.6, CategoryID: "1"},
				{ID: "2", Name: "Paneer Butter Masala", Price: price(249), Description: "Creamy tomato-based curry with cottage cheese", Type: "veg", Rating: 4.4, CategoryID: "6"},
				{ID: "3", Name: "Garlic Naan", Price: price(89), Description: "Soft Indian bread with garlic and herbs", Type: "veg", Rating: 4.3, CategoryID: "6"},
				{ID: "8", Name: "Mutton Biryani", Price: price(349), Description: "Tender mutton pieces with fragrant basmati rice", Type: "non-veg", Rating: 4.7, CategoryID: "1"},
			},
		},
		{
			ID: "2", Name: "Pizza Palace", Rating: 4.2, Distance: "2.1 km", DeliveryTime: "20-25 min",
			Cuisines:    []string{"Italian", "Pizza", "Pasta"},
			CategoryIDs: []string{"2"},
			Dishes: []Dish{
				{ID: "4", Name: "Margherita Pizza", Price: price(399), Description: "Classic pizza with fresh mozzarella and basil", Type: "veg", Rating: 4.5, CategoryID: "2"},
				{ID: "5", Name: "Chicken Pepperoni", Price: price(549), Description: "Loaded with chicken pepperoni and cheese", Type: "non-veg", Rating: 4.7, CategoryID: "2"},
				{ID: "9", Name: "Veggie Supreme Pizza", Price: price(449), Description: "Loaded with fresh vegetables and cheese", Type: "veg", Rating: 4.3, CategoryID: "2"},
			},
		},
		{
			ID: "3", Name: "Burger Junction", Rating: 4.0, Distance: "0.8 km", DeliveryTime: "15-20 min",
			Cuisines:    []string{"American", "Burgers", "Fast Food"},
			CategoryIDs: []string{"3"},
			Dishes: []Dish{
				{ID: "6", Name: "Classic Beef Burger", Price: price(299), Description: "Juicy beef patty with fresh vegetables", Type: "non-veg", Rating: 4.2, CategoryID: "3"},
				{ID: "7", Name: "Veggie Delight", Price: price(249), Description: "Grilled vegetables with special sauce", Type: "veg", Rating: 4.0, CategoryID: "3"},
			},
		},
		{
			ID: "4", Name: "Dragon Wok", Rating: 4.3, Distance: "1.5 km", DeliveryTime: "30-35 min",
			Cuisines:    []string{"Chinese", "Asian", "Noodles"},
			CategoryIDs: []string{"4"},
			Dishes: []Dish{
				{ID: "10", Name: "Chicken Fried Rice", Price: price(199), Description: "Wok-tossed rice with chicken and vegetables", Type: "non-veg", Rating: 4.4, CategoryID: "4"},
				{ID: "11", Name: "Veg Hakka Noodles", Price: price(179), Description: "Stir-fried noodles with fresh vegetables", Type: "veg", Rating: 4.2, CategoryID: "4"},
			},
		},
		{
			ID: "5", Name: "Sweet Treats", Rating: 4.6, Distance: "0.5 km", DeliveryTime: "10-15 min",
			Cuisines:    []string{"Desserts", "Bakery", "Ice Cream"},
			CategoryIDs: []string{"5"},
			Dishes: []Dish{
				{ID: "12", Name: "Chocolate Cake", Price: price(299), Description: "Rich chocolate cake with cream frosting", Type: "veg", Rating: 4.8, CategoryID: "5"},
				{ID: "13", Name: "Vanilla Ice Cream", Price: price(149), Description: "Creamy vanilla ice cream scoop", Type: "veg", Rating: 4.5, CategoryID: "5"},
			},
		},
	}

	return NewMemoryCatalog(categories, restaurants)
}
