package catalog

import (
	"foodie-storefront/models"

	"github.com/shopspring/decimal"
)

var defaultCategories = []models.Category{
	{ID: "popular", Label: "Popular", Icon: "🔥"},
	{ID: "pizza", Label: "Pizza", Icon: "🍕"},
	{ID: "burgers", Label: "Burgers", Icon: "🍔"},
	{ID: "sushi", Label: "Sushi", Icon: "🍣"},
	{ID: "desserts", Label: "Desserts", Icon: "🍰"},
	{ID: "drinks", Label: "Drinks", Icon: "🥤"},
}

func item(id, name, description, price, image string, rating float64, cookTime string) models.FoodItem {
	return models.FoodItem{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Image:       image,
		Rating:      rating,
		CookTime:    cookTime,
	}
}

func popular(f models.FoodItem) models.FoodItem {
	f.IsPopular = true
	return f
}

func defaultItems() map[string][]models.FoodItem {
	return map[string][]models.FoodItem{
		"popular": {
			popular(item("1", "Margherita Pizza", "Fresh tomatoes, mozzarella, and basil", "18.99", "/margherita-pizza-basil.png", 4.8, "25-30 min")),
			popular(item("2", "Classic Burger", "Beef patty, lettuce, tomato, and special sauce", "15.99", "/classic-beef-burger.png", 4.6, "15-20 min")),
			popular(item("3", "Salmon Sushi Roll", "Fresh salmon, avocado, and cucumber", "22.99", "/salmon-avocado-sushi.png", 4.9, "10-15 min")),
			popular(item("4", "Chocolate Cake", "Rich chocolate cake with cream frosting", "8.99", "/chocolate-cake-cream-frosting.png", 4.7, "5 min")),
		},
		"pizza": {
			item("5", "Pepperoni Pizza", "Classic pepperoni with mozzarella cheese", "20.99", "/pizza-pepperoni.png", 4.7, "25-30 min"),
			item("6", "Veggie Supreme", "Bell peppers, mushrooms, olives, and onions", "19.99", "/placeholder-ajj9l.png", 4.5, "25-30 min"),
		},
		"burgers": {
			item("7", "BBQ Bacon Burger", "BBQ sauce, bacon, and cheddar cheese", "17.99", "/bbq-bacon-cheddar-burger.png", 4.8, "15-20 min"),
			item("8", "Veggie Burger", "Plant-based patty with fresh vegetables", "14.99", "/veggie-burger-fresh.png", 4.4, "15-20 min"),
		},
		"sushi": {
			item("9", "Dragon Roll", "Eel, cucumber, and avocado with special sauce", "24.99", "/dragon-eel-avocado-sushi.png", 4.9, "10-15 min"),
			item("10", "California Roll", "Crab, avocado, and cucumber", "18.99", "/california-roll.png", 4.6, "10-15 min"),
		},
		"desserts": {
			item("11", "Tiramisu", "Classic Italian dessert with coffee and mascarpone", "9.99", "/tiramisu-dessert.png", 4.8, "5 min"),
			item("12", "Ice Cream Sundae", "Vanilla ice cream with chocolate sauce and nuts", "7.99", "/ice-cream-sundae.png", 4.5, "5 min"),
		},
		"drinks": {
			item("13", "Fresh Orange Juice", "Freshly squeezed orange juice", "4.99", "/fresh-orange-juice.png", 4.7, "2 min"),
			item("14", "Iced Coffee", "Cold brew coffee with ice and cream", "5.99", "/iced-coffee-cream.png", 4.6, "3 min"),
		},
	}
}
