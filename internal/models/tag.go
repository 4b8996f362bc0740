package models

// Tag labels recipes for filtering. Names are scoped per user but not
// unique: concurrent create-or-reuse can race into duplicates.
type Tag struct {
	BaseModel

	Name   string `gorm:"not null"`
	UserID uint   `gorm:"not null;index"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipes []Recipe `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
}

func (t Tag) String() string {
	return t.Name
}
