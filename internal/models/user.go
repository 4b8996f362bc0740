package models

type User struct {
	BaseModel

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	IsActive     bool `gorm:"default:true"`
	IsStaff      bool `gorm:"default:false"`
	IsSuperuser  bool `gorm:"default:false"`

	// Relationships
	Recipes     []Recipe     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u User) String() string {
	return u.Email
}
