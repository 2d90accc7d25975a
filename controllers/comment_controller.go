package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"glimpse-api/models"
	"glimpse-api/utils"
)

type CommentController struct {
	db *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (cc *CommentController) GetComments(c *gin.Context) {
	postID := c.Param("post_id")

	var post models.Post
	if err := cc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	var comments []models.Comment
	if err := cc.db.Preload("User").Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}

// CreateComment inserts the comment and bumps the post's comment
// counter in one transaction, so neither can exist without the other.
func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var post models.Post
	if err := cc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	comment := models.Comment{
		ID:      uuid.New().String(),
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("num_comments", gorm.Expr("num_comments + ?", 1)).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	cc.db.Preload("User").First(&comment, "id = ?", comment.ID)

	c.JSON(http.StatusCreated, comment.ToResponse())
}

func (cc *CommentController) GetComment(c *gin.Context) {
	postID := c.Param("post_id")
	commentID := c.Param("id")

	var comment models.Comment
	if err := cc.db.Preload("User").First(&comment, "id = ?", commentID).Error; err != nil {
		utils.SendNotFound(c, "Comment not found")
		return
	}

	if comment.PostID != postID {
		utils.SendValidationError(c, "Comment does not belong to this post")
		return
	}

	c.JSON(http.StatusOK, comment.ToResponse())
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")
	commentID := c.Param("id")

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ?", commentID).Error; err != nil {
		utils.SendNotFound(c, "Comment not found")
		return
	}

	if comment.PostID != postID {
		utils.SendValidationError(c, "Comment does not belong to this post")
		return
	}

	if comment.UserID != userID {
		utils.SendForbidden(c, "Editing comments is restricted to the author only")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if err := cc.db.Model(&comment).Update("content", req.Content).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update comment")
		return
	}

	cc.db.Preload("User").First(&comment, "id = ?", commentID)

	c.JSON(http.StatusOK, comment.ToResponse())
}

// DeleteComment verifies post membership, then removes the comment and
// decrements the counter together.
func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")
	commentID := c.Param("id")

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ?", commentID).Error; err != nil {
		utils.SendNotFound(c, "Comment not found")
		return
	}

	if comment.PostID != postID {
		utils.SendValidationError(c, "Comment does not belong to this post")
		return
	}

	if comment.UserID != userID {
		utils.SendForbidden(c, "Deleting comments is restricted to the author only")
		return
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("num_comments", gorm.Expr("num_comments - ?", 1)).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}
