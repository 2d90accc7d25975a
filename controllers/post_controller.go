package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"glimpse-api/models"
	"glimpse-api/utils"
)

type PostController struct {
	db *gorm.DB
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

type CreatePostRequest struct {
	Title   string  `json:"title" binding:"required,max=20"`
	Content string  `json:"content"`
	File    *string `json:"file"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=20"`
	Content *string `json:"content"`
	File    *string `json:"file"`
}

func (pc *PostController) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	pc.db.Model(&models.Post{}).Count(&total)

	var posts []models.Post
	if err := pc.db.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, posts[i].ToResponse())
	}

	utils.SendPaginated(c, responses, page, limit, total)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.File != nil && !utils.IsValidMediaFile(*req.File) {
		utils.SendValidationError(c, "File extension is not allowed")
		return
	}

	post := models.Post{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		File:    req.File,
	}

	if err := pc.db.Create(&post).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	pc.db.Preload("User").First(&post, "id = ?", post.ID)

	c.JSON(http.StatusCreated, post.ToResponse())
}

func (pc *PostController) GetPost(c *gin.Context) {
	postID := c.Param("post_id")

	var post models.Post
	if err := pc.db.Preload("User").First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	c.JSON(http.StatusOK, post.ToResponse())
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	if post.UserID != userID {
		utils.SendForbidden(c, "Editing posts is restricted to the author only")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.File != nil && !utils.IsValidMediaFile(*req.File) {
		utils.SendValidationError(c, "File extension is not allowed")
		return
	}

	// Owner and creation timestamp are immutable
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.File != nil {
		updates["file"] = *req.File
	}

	if len(updates) > 0 {
		if err := pc.db.Model(&post).Updates(updates).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update post")
			return
		}
	}

	pc.db.Preload("User").First(&post, "id = ?", postID)

	c.JSON(http.StatusOK, post.ToResponse())
}

func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendNotFound(c, "Post not found")
		return
	}

	if post.UserID != userID {
		utils.SendForbidden(c, "Deleting posts is restricted to the author only")
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	c.Status(http.StatusNoContent)
}
