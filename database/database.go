package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"glimpse-api/config"
	"glimpse-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
		&models.Follow{},
		&models.RevokedToken{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

// addDatabaseConstraints enforces at the store what the handlers also
// check, so concurrent duplicate requests cannot race past the
// application-level check-then-create.
func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate likes
	if err := db.Exec("ALTER TABLE likes ADD CONSTRAINT uk_likes_post_user UNIQUE (post_id, user_id)").Error; err != nil {
		// Ignore error if constraint already exists
		logrus.Debugf("could not add unique constraint for likes: %v", err)
	}

	// Prevent duplicate saved posts
	if err := db.Exec("ALTER TABLE saved_posts ADD CONSTRAINT uk_saved_posts_user_post UNIQUE (user_id, post_id)").Error; err != nil {
		logrus.Debugf("could not add unique constraint for saved_posts: %v", err)
	}

	// Prevent duplicate follows
	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT uk_follows_follower_following UNIQUE (follower_id, following_id)").Error; err != nil {
		logrus.Debugf("could not add unique constraint for follows: %v", err)
	}

	// Prevent self-following
	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT ck_follows_no_self_follow CHECK (follower_id != following_id)").Error; err != nil {
		logrus.Debugf("could not add check constraint for follows: %v", err)
	}

	return nil
}

// Seed creates the administrator account used by the admin-only
// endpoints. It does nothing when an admin already exists or no admin
// password is configured.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var adminCount int64
	db.Model(&models.User{}).Where("is_admin = ?", true).Count(&adminCount)
	if adminCount > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		logrus.Warn("no admin account exists and ADMIN_PASSWORD is not set; user listing will be unreachable")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		ID:          uuid.New().String(),
		Username:    cfg.AdminUsername,
		PhoneNumber: cfg.AdminPhone,
		Password:    string(hashed),
		IsAdmin:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logrus.WithField("username", admin.Username).Info("seeded admin account")
	return nil
}
