package models

import (
	"time"
)

type Post struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	UserID       string    `json:"user_id" gorm:"not null;size:191;index"`
	Title        string    `json:"title" gorm:"not null;size:20"`
	Content      string    `json:"content" gorm:"type:text"`
	File         *string   `json:"file" gorm:"size:500"`
	NumPostLikes int       `json:"num_post_likes" gorm:"default:0"`
	NumComments  int       `json:"num_comments" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User       User        `json:"-" gorm:"foreignKey:UserID"`
	Comments   []Comment   `json:"-" gorm:"foreignKey:PostID"`
	Likes      []Like      `json:"-" gorm:"foreignKey:PostID"`
	SavedPosts []SavedPost `json:"-" gorm:"foreignKey:PostID"`
}

type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// SavedPost is a private bookmark. Duplicate saves are rejected, so the
// pair carries the same composite uniqueness as likes.
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_saved_posts_user_post"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_saved_posts_user_post"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Post Post `json:"-" gorm:"foreignKey:PostID"`
}

// PostResponse is the wire shape for a post, with the author reduced to
// its public fields.
type PostResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	File         *string   `json:"file"`
	NumPostLikes int       `json:"num_post_likes"`
	NumComments  int       `json:"num_comments"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Author:       p.User.Username,
		Title:        p.Title,
		Content:      p.Content,
		File:         p.File,
		NumPostLikes: p.NumPostLikes,
		NumComments:  p.NumComments,
		CreatedAt:    p.CreatedAt,
	}
}
