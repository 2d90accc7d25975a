package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"glimpse-api/models"
	"glimpse-api/utils"
)

type LikeController struct {
	db *gorm.DB
}

func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{db: db}
}

func (lc *LikeController) GetLikes(c *gin.Context) {
	postID := c.Param("post_id")

	var post models.Post
	if err := lc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	var likes []models.Like
	if err := lc.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&likes).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch likes")
		return
	}

	c.JSON(http.StatusOK, likes)
}

// CreateLike rejects a second like from the same user and pairs the
// insert with the counter increment in one transaction. The unique
// (post_id, user_id) constraint backs the application-level check
// against concurrent duplicates.
func (lc *LikeController) CreateLike(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var post models.Post
	if err := lc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	var existingLike models.Like
	if err := lc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existingLike).Error; err == nil {
		utils.SendValidationError(c, "Post already liked")
		return
	}

	like := models.Like{
		PostID: postID,
		UserID: userID,
	}

	err := lc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("num_post_likes", gorm.Expr("num_post_likes + ?", 1)).Error
	})
	if err != nil {
		utils.SendValidationError(c, "Post already liked")
		return
	}

	c.JSON(http.StatusCreated, like)
}

func (lc *LikeController) DeleteLike(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var like models.Like
	if err := lc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		utils.SendNotFound(c, "Like not found")
		return
	}

	err := lc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("num_post_likes", gorm.Expr("num_post_likes - ?", 1)).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to unlike post")
		return
	}

	c.Status(http.StatusNoContent)
}
