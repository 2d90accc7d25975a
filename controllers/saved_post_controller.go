package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"glimpse-api/models"
	"glimpse-api/utils"
)

type SavedPostController struct {
	db *gorm.DB
}

func NewSavedPostController(db *gorm.DB) *SavedPostController {
	return &SavedPostController{db: db}
}

type CreateSavedPostRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

// Bookmarks are private, so every handler checks the caller against
// the user_id in the path.
func (sc *SavedPostController) GetSavedPosts(c *gin.Context) {
	callerID := c.GetString("user_id")
	userID := c.Param("user_id")

	if callerID != userID {
		utils.SendForbidden(c, "Saved posts are visible to their owner only")
		return
	}

	var saved []models.SavedPost
	if err := sc.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch saved posts")
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (sc *SavedPostController) CreateSavedPost(c *gin.Context) {
	callerID := c.GetString("user_id")
	userID := c.Param("user_id")

	if callerID != userID {
		utils.SendForbidden(c, "Cannot save posts for another user")
		return
	}

	var req CreateSavedPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var post models.Post
	if err := sc.db.First(&post, "id = ?", req.PostID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	var existing models.SavedPost
	if err := sc.db.Where("user_id = ? AND post_id = ?", userID, req.PostID).First(&existing).Error; err == nil {
		utils.SendValidationError(c, "Post already saved")
		return
	}

	saved := models.SavedPost{
		UserID: userID,
		PostID: req.PostID,
	}

	if err := sc.db.Create(&saved).Error; err != nil {
		// The unique constraint catches concurrent duplicate saves
		utils.SendValidationError(c, "Post already saved")
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (sc *SavedPostController) DeleteSavedPost(c *gin.Context) {
	callerID := c.GetString("user_id")
	userID := c.Param("user_id")

	if callerID != userID {
		utils.SendForbidden(c, "Cannot modify another user's saved posts")
		return
	}

	savedID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid saved post id")
		return
	}

	var saved models.SavedPost
	if err := sc.db.Where("id = ? AND user_id = ?", savedID, userID).First(&saved).Error; err != nil {
		utils.SendNotFound(c, "Saved post not found")
		return
	}

	if err := sc.db.Delete(&saved).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete saved post")
		return
	}

	c.Status(http.StatusNoContent)
}
