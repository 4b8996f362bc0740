package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/models"
	"github.com/recipebox-dev/recipebox/internal/services"
	"github.com/recipebox-dev/recipebox/internal/storage"
	"github.com/recipebox-dev/recipebox/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Inline tag/ingredient reference in a recipe payload. Resolution is
// create-or-reuse by name within the requester's scope.
type CatalogItemInput struct {
	Name string `json:"name" binding:"required"`
}

type CreateRecipeRequest struct {
	Title       string             `json:"title" binding:"required"`
	TimeMinutes int                `json:"time_minutes" binding:"required"`
	Price       decimal.Decimal    `json:"price" binding:"required"`
	Description string             `json:"description"`
	Link        string             `json:"link"`
	Tags        []CatalogItemInput `json:"tags" binding:"omitempty,dive"`
	Ingredients []CatalogItemInput `json:"ingredients" binding:"omitempty,dive"`
}

type UpdateRecipeRequest struct {
	Title       string             `json:"title" binding:"required"`
	TimeMinutes int                `json:"time_minutes" binding:"required"`
	Price       decimal.Decimal    `json:"price" binding:"required"`
	Description string             `json:"description"`
	Link        string             `json:"link"`
	Tags        []CatalogItemInput `json:"tags" binding:"omitempty,dive"`
	Ingredients []CatalogItemInput `json:"ingredients" binding:"omitempty,dive"`
}

type PatchRecipeRequest struct {
	Title       *string             `json:"title"`
	TimeMinutes *int                `json:"time_minutes"`
	Price       *decimal.Decimal    `json:"price"`
	Description *string             `json:"description"`
	Link        *string             `json:"link"`
	Tags        *[]CatalogItemInput `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]CatalogItemInput `json:"ingredients" binding:"omitempty,dive"`
}

// RecipeSummary is the list serialization: no description, no image,
// associations as bare ids.
type RecipeSummary struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        []uint          `json:"tags"`
	Ingredients []uint          `json:"ingredients"`
}

type RecipeDetail struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       decimal.Decimal      `json:"price"`
	Link        string               `json:"link"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func toRecipeSummary(recipe models.Recipe) RecipeSummary {
	tagIDs := make([]uint, 0, len(recipe.Tags))

	for _, tag := range recipe.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	ingredientIDs := make([]uint, 0, len(recipe.Ingredients))

	for _, ingredient := range recipe.Ingredients {
		ingredientIDs = append(ingredientIDs, ingredient.ID)
	}

	return RecipeSummary{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func toRecipeDetail(recipe models.Recipe) RecipeDetail {
	tags := make([]TagResponse, 0, len(recipe.Tags))

	for _, tag := range recipe.Tags {
		tags = append(tags, TagResponse{ID: tag.ID, Name: tag.Name})
	}

	ingredients := make([]IngredientResponse, 0, len(recipe.Ingredients))

	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}

	return RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Description: recipe.Description,
		Image:       recipe.ImagePath,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func itemNames(items []CatalogItemInput) []string {
	names := make([]string, 0, len(items))

	for _, item := range items {
		names = append(names, item.Name)
	}

	return names
}

func syncTags(tx *gorm.DB, recipe *models.Recipe, tags []models.Tag) error {
	if len(tags) == 0 {
		return tx.Model(recipe).Association("Tags").Clear()
	}

	return tx.Model(recipe).Association("Tags").Replace(&tags)
}

func syncIngredients(tx *gorm.DB, recipe *models.Recipe, ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return tx.Model(recipe).Association("Ingredients").Clear()
	}

	return tx.Model(recipe).Association("Ingredients").Replace(&ingredients)
}

func ListRecipes(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tagIDs, err := utils.ParseIDList(ctx.Query("tags"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags parameter"})
		return
	}

	ingredientIDs, err := utils.ParseIDList(ctx.Query("ingredients"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredients parameter"})
		return
	}

	var recipes []models.Recipe

	if err := services.ScopedRecipes(db.DB, userID, tagIDs, ingredientIDs).Find(&recipes).Error; err != nil {
		log.Printf("Failed to retrieve recipes: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	response := make([]RecipeSummary, 0, len(recipes))

	for _, recipe := range recipes {
		response = append(response, toRecipeSummary(recipe))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateRecipe(ctx *gin.Context) {
	var req CreateRecipeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		tags, err := services.ResolveTags(tx, userID, itemNames(req.Tags))

		if err != nil {
			return err
		}

		if err := syncTags(tx, &recipe, tags); err != nil {
			return err
		}

		ingredients, err := services.ResolveIngredients(tx, userID, itemNames(req.Ingredients))

		if err != nil {
			return err
		}

		return syncIngredients(tx, &recipe, ingredients)
	})

	if err != nil {
		log.Printf("Failed to create recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	if err := db.DB.Preload("Tags").Preload("Ingredients").First(&recipe, recipe.ID).Error; err != nil {
		log.Printf("Failed to reload recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusCreated, toRecipeDetail(recipe))
}

func GetRecipe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var recipe models.Recipe
	recipeID := ctx.Param("id")

	err = db.DB.Preload("Tags").Preload("Ingredients").
		Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		}
		return
	}

	ctx.JSON(http.StatusOK, toRecipeDetail(recipe))
}

func UpdateRecipe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateRecipeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var recipe models.Recipe
	recipeID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		}
		return
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = req.Price
	recipe.Link = req.Link

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		tags, err := services.ResolveTags(tx, userID, itemNames(req.Tags))

		if err != nil {
			return err
		}

		if err := syncTags(tx, &recipe, tags); err != nil {
			return err
		}

		ingredients, err := services.ResolveIngredients(tx, userID, itemNames(req.Ingredients))

		if err != nil {
			return err
		}

		return syncIngredients(tx, &recipe, ingredients)
	})

	if err != nil {
		log.Printf("Failed to update recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	if err := db.DB.Preload("Tags").Preload("Ingredients").First(&recipe, recipe.ID).Error; err != nil {
		log.Printf("Failed to reload recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusOK, toRecipeDetail(recipe))
}

func PatchRecipe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PatchRecipeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var recipe models.Recipe
	recipeID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		}
		return
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if req.Tags != nil {
			tags, err := services.ResolveTags(tx, userID, itemNames(*req.Tags))

			if err != nil {
				return err
			}

			if err := syncTags(tx, &recipe, tags); err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			ingredients, err := services.ResolveIngredients(tx, userID, itemNames(*req.Ingredients))

			if err != nil {
				return err
			}

			if err := syncIngredients(tx, &recipe, ingredients); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to update recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	if err := db.DB.Preload("Tags").Preload("Ingredients").First(&recipe, recipe.ID).Error; err != nil {
		log.Printf("Failed to reload recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusOK, toRecipeDetail(recipe))
}

func DeleteRecipe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var recipe models.Recipe
	recipeID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}

		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})

	if err != nil {
		log.Printf("Failed to delete recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	storage.RemoveImage(recipe.ImagePath)

	ctx.Status(http.StatusNoContent)
}

func UploadRecipeImage(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var recipe models.Recipe
	recipeID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		}
		return
	}

	fileHeader, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	path, err := storage.SaveImage(fileHeader)

	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not a valid image"})
			return
		}
		log.Printf("Failed to store image: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	previous := recipe.ImagePath

	if err := db.DB.Model(&recipe).Update("image_path", path).Error; err != nil {
		log.Printf("Failed to update recipe image: %v", err)
		storage.RemoveImage(path)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	if previous != path {
		storage.RemoveImage(previous)
	}

	ctx.JSON(http.StatusOK, RecipeImageResponse{ID: recipe.ID, Image: path})
}
