package services

import (
	"github.com/recipebox-dev/recipebox/internal/models"
	"gorm.io/gorm"
)

// ResolveTags maps inline tag names to tag rows owned by the user,
// creating any that do not exist yet. Lookup is by exact name.
func ResolveTags(tx *gorm.DB, userID uint, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))

	for _, name := range names {
		var tag models.Tag

		err := tx.Where(models.Tag{UserID: userID, Name: name}).FirstOrCreate(&tag).Error

		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

func ResolveIngredients(tx *gorm.DB, userID uint, names []string) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(names))

	for _, name := range names {
		var ingredient models.Ingredient

		err := tx.Where(models.Ingredient{UserID: userID, Name: name}).FirstOrCreate(&ingredient).Error

		if err != nil {
			return nil, err
		}

		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// ScopedRecipes builds the recipe list query for a user: newest first,
// optionally narrowed to recipes carrying at least one of the given tag or
// ingredient ids. Joins are deduplicated with DISTINCT.
func ScopedRecipes(gdb *gorm.DB, userID uint, tagIDs, ingredientIDs []uint) *gorm.DB {
	query := gdb.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}

	if len(ingredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	if len(tagIDs) > 0 || len(ingredientIDs) > 0 {
		query = query.Distinct("recipes.*")
	}

	return query.Preload("Tags").Preload("Ingredients").Order("recipes.id DESC")
}

// ScopedTags builds the tag list query for a user, name descending.
// With assignedOnly, only tags attached to at least one recipe are kept.
func ScopedTags(gdb *gorm.DB, userID uint, assignedOnly bool) *gorm.DB {
	query := gdb.Model(&models.Tag{}).Where("tags.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}

	return query.Order("tags.name DESC")
}

func ScopedIngredients(gdb *gorm.DB, userID uint, assignedOnly bool) *gorm.DB {
	query := gdb.Model(&models.Ingredient{}).Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	return query.Order("ingredients.name DESC")
}
