package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jmorales/portfolio-backend/errs"
	"github.com/jmorales/portfolio-backend/models"
)

// listOrder sorts newest-first by publication time, falling back to the row
// creation time for unpublished posts.
const listOrder = "COALESCE(published_at, created_at) DESC"

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindAll returns every post, drafts included, newest first.
func (r *PostRepo) FindAll() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Tags").Order(listOrder).Find(&posts).Error
	if err != nil {
		return nil, errs.Classify("find posts", err)
	}
	return posts, nil
}

// FindPublished returns published posts only, newest first.
func (r *PostRepo) FindPublished() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Tags").Where("published = ?", true).Order(listOrder).Find(&posts).Error
	if err != nil {
		return nil, errs.Classify("find published posts", err)
	}
	return posts, nil
}

// FindFeatured returns published featured posts, newest first, capped at limit.
func (r *PostRepo) FindFeatured(limit int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.Preload("Tags").Where("published = ? AND featured = ?", true, true).Order(listOrder)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, errs.Classify("find featured posts", err)
	}
	return posts, nil
}

// FindBySlug returns the post with its tags, or nil when no row matches.
func (r *PostRepo) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Classify("find post by slug", err)
	}
	return &post, nil
}

// Create inserts the post and associates its tags in one transaction, so a
// failed insert never leaves orphaned tag links. A slug collision surfaces
// as errs.ErrDuplicateKey via the unique index, not an application-level
// pre-check.
func (r *PostRepo) Create(post *models.Post, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(post).Error; err != nil {
			return errs.Classify("create post", err)
		}
		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return errs.Classify("associate post tags", err)
			}
		}
		post.Tags = tags
		return nil
	})
}

// Update applies a sparse patch to the post with the given id. Only fields
// present in the patch change; reading time and published_at bookkeeping
// live in PostPatch.Apply. Returns errs.ErrNotFound when the id is absent.
func (r *PostRepo) Update(id uint, patch models.PostPatch) (*models.Post, error) {
	var updated *models.Post
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Preload("Tags").First(&post, id).Error; err != nil {
			return errs.Classify("find post", err)
		}

		patch.Apply(&post, time.Now().UTC())
		if err := tx.Omit("Tags").Save(&post).Error; err != nil {
			return errs.Classify("update post", err)
		}

		if patch.Tags != nil {
			tags, err := findOrCreateTags(tx, *patch.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Tags").Replace(tags); err != nil {
				return errs.Classify("replace post tags", err)
			}
			post.Tags = tags
		}

		updated = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post and its tag associations. Deleting an id that
// does not exist returns errs.ErrNotFound; repeated deletes do not succeed
// silently.
func (r *PostRepo) Delete(id uint) (*models.Post, error) {
	var deleted *models.Post
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Preload("Tags").First(&post, id).Error; err != nil {
			return errs.Classify("find post", err)
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return errs.Classify("clear post tags", err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return errs.Classify("delete post", err)
		}
		deleted = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// DeleteAll removes every post and its tag associations, returning the
// number of posts removed. Tags themselves are kept.
func (r *PostRepo) DeleteAll() (int64, error) {
	var count int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags").Error; err != nil {
			return errs.Classify("clear post tags", err)
		}
		res := tx.Where("1 = 1").Delete(&models.Post{})
		if res.Error != nil {
			return errs.Classify("delete posts", res.Error)
		}
		count = res.RowsAffected
		return nil
	})
	return count, err
}

// CountAll returns the total number of posts, drafts included.
func (r *PostRepo) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, errs.Classify("count posts", err)
	}
	return count, nil
}

// CountPublished returns the number of published posts.
func (r *PostRepo) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("published = ?", true).Count(&count).Error
	if err != nil {
		return 0, errs.Classify("count published posts", err)
	}
	return count, nil
}
