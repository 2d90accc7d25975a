package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"glimpse-api/models"
	"glimpse-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// GetUsers lists every account. Admin only; the route attaches
// RequireAdmin so a regular caller never reaches this handler.
func (uc *UserController) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	uc.db.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := uc.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	utils.SendPaginated(c, responses, page, limit, total)
}

func (uc *UserController) GetUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendNotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// DeleteUser removes an account and everything it owns. Allowed for
// the account itself and for administrators.
func (uc *UserController) DeleteUser(c *gin.Context) {
	callerID := c.GetString("user_id")
	targetID := c.Param("id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", targetID).Error; err != nil {
		utils.SendNotFound(c, "User not found")
		return
	}

	if callerID != targetID && !c.GetBool("is_admin") {
		utils.SendForbidden(c, "Deleting accounts is restricted to the owner")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		// Dependents of the user's own posts go first
		var postIDs []string
		if err := tx.Model(&models.Post{}).Where("user_id = ?", targetID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.SavedPost{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", targetID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		// Rows the user left on other people's posts, with counter fix-ups
		var comments []models.Comment
		if err := tx.Where("user_id = ?", targetID).Find(&comments).Error; err != nil {
			return err
		}
		for _, comment := range comments {
			if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
				UpdateColumn("num_comments", gorm.Expr("num_comments - ?", 1)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		var likes []models.Like
		if err := tx.Where("user_id = ?", targetID).Find(&likes).Error; err != nil {
			return err
		}
		for _, like := range likes {
			if err := tx.Model(&models.Post{}).Where("id = ?", like.PostID).
				UpdateColumn("num_post_likes", gorm.Expr("num_post_likes - ?", 1)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", targetID).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}

		// Follow edges in both directions, fixing peers' counters
		var outgoing []models.Follow
		if err := tx.Where("follower_id = ?", targetID).Find(&outgoing).Error; err != nil {
			return err
		}
		for _, follow := range outgoing {
			if err := tx.Model(&models.User{}).Where("id = ?", follow.FollowingID).
				UpdateColumn("num_followers", gorm.Expr("num_followers - ?", 1)).Error; err != nil {
				return err
			}
		}

		var incoming []models.Follow
		if err := tx.Where("following_id = ?", targetID).Find(&incoming).Error; err != nil {
			return err
		}
		for _, follow := range incoming {
			if err := tx.Model(&models.User{}).Where("id = ?", follow.FollowerID).
				UpdateColumn("num_following", gorm.Expr("num_following - ?", 1)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("follower_id = ? OR following_id = ?", targetID, targetID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) FollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if userID == targetUserID {
		utils.SendValidationError(c, "Cannot follow yourself")
		return
	}

	var target models.User
	if err := uc.db.First(&target, "id = ?", targetUserID).Error; err != nil {
		utils.SendNotFound(c, "User not found")
		return
	}

	var existingFollow models.Follow
	if err := uc.db.Where("follower_id = ? AND following_id = ?", userID, targetUserID).First(&existingFollow).Error; err == nil {
		utils.SendValidationError(c, "Already following this user")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		follow := models.Follow{
			FollowerID:  userID,
			FollowingID: targetUserID,
		}
		if err := tx.Create(&follow).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("num_following", gorm.Expr("num_following + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", targetUserID).
			UpdateColumn("num_followers", gorm.Expr("num_followers + ?", 1)).Error
	})
	if err != nil {
		// The unique constraint catches concurrent duplicate follows
		utils.SendValidationError(c, "Already following this user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully followed user"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	var follow models.Follow
	if err := uc.db.Where("follower_id = ? AND following_id = ?", userID, targetUserID).First(&follow).Error; err != nil {
		utils.SendNotFound(c, "Follow relationship not found")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&follow).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("num_following", gorm.Expr("num_following - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", targetUserID).
			UpdateColumn("num_followers", gorm.Expr("num_followers - ?", 1)).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	userID := c.Param("id")

	var follows []models.Follow
	if err := uc.db.Preload("Follower").Where("following_id = ?", userID).Find(&follows).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to get followers")
		return
	}

	followers := make([]models.UserResponse, 0, len(follows))
	for i := range follows {
		followers = append(followers, follows[i].Follower.ToResponse())
	}

	c.JSON(http.StatusOK, followers)
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	userID := c.Param("id")

	var follows []models.Follow
	if err := uc.db.Preload("Following").Where("follower_id = ?", userID).Find(&follows).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to get following")
		return
	}

	following := make([]models.UserResponse, 0, len(follows))
	for i := range follows {
		following = append(following, follows[i].Following.ToResponse())
	}

	c.JSON(http.StatusOK, following)
}
