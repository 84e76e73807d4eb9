// Package schema provides the database schema models for BarDB.
package schema

// Drink is one cocktail in its canonical stored shape.
type Drink struct {
	// ID is the upstream catalog identifier, parsed to an integer.
	ID int `gorm:"primaryKey;column:id"`

	// Name is the drink name.
	Name string `gorm:"column:name;type:varchar(255);index"`

	// Tags is the comma-separated upstream tag list.
	Tags string `gorm:"column:tags;type:varchar(255)"`

	// Type is the upstream category, e.g. "Ordinary Drink".
	Type string `gorm:"column:type;type:varchar(255)"`

	// GlassType names the serving glass.
	GlassType string `gorm:"column:glass_type;type:varchar(255)"`

	// Instructions is the free-text preparation description.
	Instructions string `gorm:"column:instructions;type:text"`

	// ImageURL points at the upstream thumbnail.
	ImageURL string `gorm:"column:image_url;type:varchar(255)"`
}

// TableName returns the PostgreSQL table name for drinks.
func (Drink) TableName() string { return "drinks" }

// Ingredient is one ingredient in its canonical stored shape.
type Ingredient struct {
	ID int `gorm:"primaryKey;column:id"`

	// Name is the canonical ingredient name; link resolution matches
	// against it case-insensitively.
	Name string `gorm:"column:name;type:varchar(255);index"`

	Description string `gorm:"column:description;type:text"`
}

// TableName returns the PostgreSQL table name for ingredients.
func (Ingredient) TableName() string { return "ingredients" }

// DrinkIngredientLink associates a drink with one of its ingredients.
// The pair is unique; reloading the same links is a no-op.
type DrinkIngredientLink struct {
	DrinkID      int `gorm:"column:drink_id;uniqueIndex:idx_drink_ingredient"`
	IngredientID int `gorm:"column:ingredient_id;uniqueIndex:idx_drink_ingredient"`
}

// TableName returns the PostgreSQL table name for drink-ingredient
// links.
func (DrinkIngredientLink) TableName() string {
	return "drink_ingredients_link"
}
