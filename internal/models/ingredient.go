package models

type Ingredient struct {
	BaseModel

	Name   string `gorm:"not null"`
	UserID uint   `gorm:"not null;index"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}

func (i Ingredient) String() string {
	return i.Name
}
