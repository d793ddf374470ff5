package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jmorales/portfolio-backend/errs"
	"github.com/jmorales/portfolio-backend/meta"
	"github.com/jmorales/portfolio-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by name.
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, errs.Classify("find tags", err)
	}
	return tags, nil
}

// FindByName returns the tag with the given name, or nil when absent.
func (r *TagRepo) FindByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Classify("find tag by name", err)
	}
	return &tag, nil
}

// Create inserts a new tag. Name and slug collisions surface as
// errs.ErrDuplicateKey via the unique indexes.
func (r *TagRepo) Create(tag *models.Tag) error {
	if tag.Slug == "" {
		tag.Slug = meta.TagSlug(tag.Name)
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}
	if err := r.db.Create(tag).Error; err != nil {
		return errs.Classify("create tag", err)
	}
	return nil
}

// findOrCreateTags resolves tag names to Tag rows inside tx, creating the
// ones that do not exist yet. Names are trimmed and deduplicated
// case-insensitively; empty names are skipped.
func findOrCreateTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		var tag models.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{
				Name:  name,
				Slug:  meta.TagSlug(name),
				Color: models.DefaultTagColor,
			}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, errs.Classify("create tag", err)
			}
		} else if err != nil {
			return nil, errs.Classify("find tag by name", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
