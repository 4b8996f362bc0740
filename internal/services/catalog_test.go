package services_test

import (
	"testing"

	"github.com/recipebox-dev/recipebox/internal/models"
	"github.com/recipebox-dev/recipebox/internal/services"
	"github.com/recipebox-dev/recipebox/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, gdb *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := services.CreateUser(gdb, email, "password123", "")
	require.NoError(t, err)
	return user
}

func createRecipe(t *testing.T, gdb *gorm.DB, userID uint, title string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 22,
		Price:       decimal.RequireFromString("10.50"),
	}
	require.NoError(t, gdb.Create(&recipe).Error)
	return &recipe
}

func TestResolveTagsCreatesMissing(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	tags, err := services.ResolveTags(gdb, user.ID, []string{"Thai", "Dinner"})

	require.NoError(t, err)
	require.Len(t, tags, 2)

	var count int64
	require.NoError(t, gdb.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestResolveTagsReusesExisting(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	existing := models.Tag{Name: "Colombian", UserID: user.ID}
	require.NoError(t, gdb.Create(&existing).Error)

	tags, err := services.ResolveTags(gdb, user.ID, []string{"Colombian", "Breakfast"})

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, existing.ID, tags[0].ID)

	var count int64
	require.NoError(t, gdb.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestResolveTagsScopedToUser(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")
	other := createUser(t, gdb, "other@example.com")

	theirs := models.Tag{Name: "Vegan", UserID: other.ID}
	require.NoError(t, gdb.Create(&theirs).Error)

	tags, err := services.ResolveTags(gdb, user.ID, []string{"Vegan"})

	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.NotEqual(t, theirs.ID, tags[0].ID)
	assert.Equal(t, user.ID, tags[0].UserID)
}

func TestResolveIngredientsCreateOrReuse(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	existing := models.Ingredient{Name: "Lemon", UserID: user.ID}
	require.NoError(t, gdb.Create(&existing).Error)

	ingredients, err := services.ResolveIngredients(gdb, user.ID, []string{"Lemon", "Fish Sauce"})

	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, existing.ID, ingredients[0].ID)

	var count int64
	require.NoError(t, gdb.Model(&models.Ingredient{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestScopedRecipesOrderedNewestFirst(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	first := createRecipe(t, gdb, user.ID, "First")
	second := createRecipe(t, gdb, user.ID, "Second")

	var recipes []models.Recipe
	require.NoError(t, services.ScopedRecipes(gdb, user.ID, nil, nil).Find(&recipes).Error)

	require.Len(t, recipes, 2)
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Equal(t, first.ID, recipes[1].ID)
}

func TestScopedRecipesExcludesOtherUsers(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")
	other := createUser(t, gdb, "other@example.com")

	createRecipe(t, gdb, user.ID, "Mine")
	createRecipe(t, gdb, other.ID, "Theirs")

	var recipes []models.Recipe
	require.NoError(t, services.ScopedRecipes(gdb, user.ID, nil, nil).Find(&recipes).Error)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Mine", recipes[0].Title)
}

func TestScopedRecipesFilterByTags(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	curry := createRecipe(t, gdb, user.ID, "Thai Curry")
	tacos := createRecipe(t, gdb, user.ID, "Tacos")
	createRecipe(t, gdb, user.ID, "Plain Toast")

	thai := models.Tag{Name: "Thai", UserID: user.ID}
	mexican := models.Tag{Name: "Mexican", UserID: user.ID}
	require.NoError(t, gdb.Create(&thai).Error)
	require.NoError(t, gdb.Create(&mexican).Error)

	require.NoError(t, gdb.Model(curry).Association("Tags").Append(&thai))
	require.NoError(t, gdb.Model(tacos).Association("Tags").Append(&mexican))

	var recipes []models.Recipe
	err := services.ScopedRecipes(gdb, user.ID, []uint{thai.ID, mexican.ID}, nil).Find(&recipes).Error

	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, tacos.ID, recipes[0].ID)
	assert.Equal(t, curry.ID, recipes[1].ID)
}

func TestScopedRecipesFilterDeduplicates(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	curry := createRecipe(t, gdb, user.ID, "Thai Curry")

	thai := models.Tag{Name: "Thai", UserID: user.ID}
	dinner := models.Tag{Name: "Dinner", UserID: user.ID}
	require.NoError(t, gdb.Create(&thai).Error)
	require.NoError(t, gdb.Create(&dinner).Error)
	require.NoError(t, gdb.Model(curry).Association("Tags").Append(&thai, &dinner))

	var recipes []models.Recipe
	err := services.ScopedRecipes(gdb, user.ID, []uint{thai.ID, dinner.ID}, nil).Find(&recipes).Error

	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestScopedRecipesFilterByIngredients(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	soup := createRecipe(t, gdb, user.ID, "Lemon Soup")
	createRecipe(t, gdb, user.ID, "Dry Crackers")

	lemon := models.Ingredient{Name: "Lemon", UserID: user.ID}
	require.NoError(t, gdb.Create(&lemon).Error)
	require.NoError(t, gdb.Model(soup).Association("Ingredients").Append(&lemon))

	var recipes []models.Recipe
	err := services.ScopedRecipes(gdb, user.ID, nil, []uint{lemon.ID}).Find(&recipes).Error

	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, soup.ID, recipes[0].ID)
}

func TestScopedTagsOrderedByNameDescending(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	require.NoError(t, gdb.Create(&models.Tag{Name: "Dessert", UserID: user.ID}).Error)
	require.NoError(t, gdb.Create(&models.Tag{Name: "Vegan", UserID: user.ID}).Error)

	var tags []models.Tag
	require.NoError(t, services.ScopedTags(gdb, user.ID, false).Find(&tags).Error)

	require.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestScopedTagsAssignedOnly(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	recipe := createRecipe(t, gdb, user.ID, "Green Eggs")

	assigned := models.Tag{Name: "Breakfast", UserID: user.ID}
	unassigned := models.Tag{Name: "Lunch", UserID: user.ID}
	require.NoError(t, gdb.Create(&assigned).Error)
	require.NoError(t, gdb.Create(&unassigned).Error)
	require.NoError(t, gdb.Model(recipe).Association("Tags").Append(&assigned))

	var tags []models.Tag
	require.NoError(t, services.ScopedTags(gdb, user.ID, true).Find(&tags).Error)

	require.Len(t, tags, 1)
	assert.Equal(t, assigned.ID, tags[0].ID)
}

func TestScopedTagsAssignedOnlyUnique(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	pancakes := createRecipe(t, gdb, user.ID, "Pancakes")
	porridge := createRecipe(t, gdb, user.ID, "Porridge")

	breakfast := models.Tag{Name: "Breakfast", UserID: user.ID}
	require.NoError(t, gdb.Create(&breakfast).Error)
	require.NoError(t, gdb.Model(pancakes).Association("Tags").Append(&breakfast))
	require.NoError(t, gdb.Model(porridge).Association("Tags").Append(&breakfast))

	var tags []models.Tag
	require.NoError(t, services.ScopedTags(gdb, user.ID, true).Find(&tags).Error)

	assert.Len(t, tags, 1)
}

func TestScopedIngredientsAssignedOnly(t *testing.T) {
	gdb := testdb.Open(t)
	user := createUser(t, gdb, "user@example.com")

	recipe := createRecipe(t, gdb, user.ID, "Apple Crumble")

	assigned := models.Ingredient{Name: "Apples", UserID: user.ID}
	unassigned := models.Ingredient{Name: "Turkey", UserID: user.ID}
	require.NoError(t, gdb.Create(&assigned).Error)
	require.NoError(t, gdb.Create(&unassigned).Error)
	require.NoError(t, gdb.Model(recipe).Association("Ingredients").Append(&assigned))

	var ingredients []models.Ingredient
	require.NoError(t, services.ScopedIngredients(gdb, user.ID, true).Find(&ingredients).Error)

	require.Len(t, ingredients, 1)
	assert.Equal(t, assigned.ID, ingredients[0].ID)
}
