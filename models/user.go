package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;size:150"`
	PhoneNumber  string    `json:"phone_number" gorm:"uniqueIndex;not null;size:20"`
	Password     string    `json:"-" gorm:"not null;size:255"`
	Email        string    `json:"email" gorm:"size:255"`
	Avatar       *string   `json:"avatar" gorm:"size:500"`
	Bio          *string   `json:"bio" gorm:"size:100"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	NumFollowers int       `json:"num_followers" gorm:"default:0"`
	NumFollowing int       `json:"num_following" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Posts      []Post      `json:"-" gorm:"foreignKey:UserID"`
	Comments   []Comment   `json:"-" gorm:"foreignKey:UserID"`
	Likes      []Like      `json:"-" gorm:"foreignKey:UserID"`
	SavedPosts []SavedPost `json:"-" gorm:"foreignKey:UserID"`
}

type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"not null;size:191;uniqueIndex:uk_follows_follower_following"`
	FollowingID string    `json:"following_id" gorm:"not null;size:191;uniqueIndex:uk_follows_follower_following"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"-" gorm:"foreignKey:FollowerID"`
	Following User `json:"-" gorm:"foreignKey:FollowingID"`
}

// UserResponse is the wire shape for a user. Fields are an explicit
// allow-list so the password hash can never leak through serialization.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email,omitempty"`
	Avatar       *string   `json:"avatar"`
	Bio          *string   `json:"bio"`
	IsAdmin      bool      `json:"is_admin"`
	NumFollowers int       `json:"num_followers"`
	NumFollowing int       `json:"num_following"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		PhoneNumber:  u.PhoneNumber,
		Email:        u.Email,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		IsAdmin:      u.IsAdmin,
		NumFollowers: u.NumFollowers,
		NumFollowing: u.NumFollowing,
		CreatedAt:    u.CreatedAt,
	}
}
