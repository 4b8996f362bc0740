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

type UpdateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func ListTags(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignedOnly := ctx.Query("assigned_only") == "1"

	var tags []models.Tag

	if err := services.ScopedTags(db.DB, userID, assignedOnly).Find(&tags).Error; err != nil {
		log.Printf("Failed to retrieve tags: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}

	response := make([]TagResponse, 0, len(tags))

	for _, tag := range tags {
		response = append(response, TagResponse{ID: tag.ID, Name: tag.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateTagRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var tag models.Tag
	tagID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		}
		return
	}

	tag.Name = req.Name

	if err := db.DB.Save(&tag).Error; err != nil {
		log.Printf("Failed to update tag: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	ctx.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name})
}

func DeleteTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var tag models.Tag
	tagID := ctx.Param("id")

	if err := db.DB.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Recipes").Clear(); err != nil {
			return err
		}

		return tx.Delete(&tag).Error
	})

	if err != nil {
		log.Printf("Failed to delete tag: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
