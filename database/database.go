package database

import (
	"gorm.io/gorm"

	"github.com/jmorales/portfolio-backend/models"
)

type Database struct {
	postRepo *PostRepo
	tagRepo  *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		postRepo: NewPostRepo(db),
		tagRepo:  NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// Migrate creates or updates the posts, tags and post_tags tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Tag{}, &models.Post{})
}
