package blog

import (
	"time"

	"gorm.io/gorm"

	"blogicum/models"
)

// filterScheduled keeps posts whose publication flag is set and whose
// pub_date is not in the future. The comparison is inclusive: a post dated
// exactly now is already public.
func filterScheduled(now time.Time) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.is_published = ? AND posts.pub_date <= ?", true, now)
	}
}

// filterVisibleCategory hides posts filed under an unpublished category.
// Posts without a category (the category was removed) always pass.
func filterVisibleCategory(tx *gorm.DB) *gorm.DB {
	return tx.
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where("posts.category_id IS NULL OR categories.is_published = ?", true)
}

// publicPosts is the full public-visibility rule used by the home feed.
func (b *BlogModule) publicPosts(now time.Time) *gorm.DB {
	tx := b.db.Model(&models.Post{}).Select("posts.*")
	tx = filterScheduled(now)(tx)
	return filterVisibleCategory(tx)
}
