package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/models"
	"github.com/recipebox-dev/recipebox/internal/services"
	"github.com/recipebox-dev/recipebox/internal/utils"
	"gorm.io/gorm"
)

type UpdateIngredientRequest struct {
	Name string `json:"name" binding:"required"`
}

type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func ListIngredients(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignedOnly := ctx.Query("assigned_only") == "1"

	var ingredients []models.Ingredient

	if err := services.ScopedIngredients(db.DB, userID, assignedOnly).Find(&ingredients).Error; err != nil {
		log.Printf("Failed to retrieve ingredients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}

	response := make([]IngredientResponse, 0, len(ingredients))

	for _, ingredient := range ingredients {
		response = append(response, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateIngredient(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateIngredientRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var ingredient models.Ingredient
	ingredientID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", ingredientID, userID).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredient"})
		}
		return
	}

	ingredient.Name = req.Name

	if err := db.DB.Save(&ingredient).Error; err != nil {
		log.Printf("Failed to update ingredient: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		return
	}

	ctx.JSON(http.StatusOK, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func DeleteIngredient(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var ingredient models.Ingredient
	ingredientID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", ingredientID, userID).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredient"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ingredient).Association("Recipes").Clear(); err != nil {
			return err
		}

		return tx.Delete(&ingredient).Error
	})

	if err != nil {
		log.Printf("Failed to delete ingredient: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
