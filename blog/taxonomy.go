package blog

import (
	"gorm.io/gorm"

	"blogicum/models"
)

// Lifecycle rules for top-level records. The UI that manages categories,
// locations and accounts lives outside this application, but the
// referential rules belong to it: comments never outlive their post,
// posts never outlive their author, and posts survive the removal of
// their category or location.

// RemovePost deletes a post together with all of its comments.
func (b *BlogModule) RemovePost(postID uint) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

// RemoveCategory deletes a category; referencing posts keep existing with
// a null category.
func (b *BlogModule) RemoveCategory(categoryID int) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, categoryID).Error
	})
}

// RemoveLocation deletes a location; referencing posts keep existing with
// a null location.
func (b *BlogModule) RemoveLocation(locationID int) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).
			Where("location_id = ?", locationID).
			Update("location_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, locationID).Error
	})
}

// RemoveUser deletes an account with everything it authored: its
// comments, its posts and the comments under those posts.
func (b *BlogModule) RemoveUser(userID int) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		var postIDs []uint
		err := tx.Model(&models.Post{}).
			Where("author_id = ?", userID).
			Pluck("id", &postIDs).Error
		if err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, userID).Error
	})
}
