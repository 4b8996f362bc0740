package models

import "github.com/shopspring/decimal"

type Recipe struct {
	BaseModel

	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"not null"`
	Description string          `gorm:"type:text"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(5,2)"`
	Link        string
	ImagePath   string

	// Relationships
	User        User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}

func (r Recipe) String() string {
	return r.Title
}
