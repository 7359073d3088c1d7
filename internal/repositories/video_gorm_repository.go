package repositories

import (
	"context"
	"fmt"

	"videohub/internal/models"

	"gorm.io/gorm"
)

// GORMVideoRepository is a GORM implementation of VideoRepository.
type GORMVideoRepository struct {
	db *gorm.DB
}

// NewGORMVideoRepository creates a new instance of GORMVideoRepository.
func NewGORMVideoRepository(db *gorm.DB) *GORMVideoRepository {
	return &GORMVideoRepository{
		db: db,
	}
}

// GetAll retrieves all videos in insertion order.
func (r *GORMVideoRepository) GetAll(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).Order("id").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to get all videos: %w", err)
	}
	return videos, nil
}

// Create inserts the video exactly as given; the ID is assigned by the database.
func (r *GORMVideoRepository) Create(ctx context.Context, video *models.Video) error {
	video.ID = 0
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// DeleteByTitle deletes every video with the given title.
func (r *GORMVideoRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res := r.db.WithContext(ctx).Where("title = ?", title).Delete(&models.Video{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete videos titled %q: %w", title, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteAll empties the table and resets its auto-increment counter.
// The two statements are not transactional: MySQL commits implicitly on ALTER TABLE.
func (r *GORMVideoRepository) DeleteAll(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Video{}).Error; err != nil {
		return fmt.Errorf("failed to delete all videos: %w", err)
	}
	if err := r.resetSequence(db); err != nil {
		return fmt.Errorf("failed to reset video id sequence: %w", err)
	}
	return nil
}

func (r *GORMVideoRepository) resetSequence(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres":
		return db.Exec("SELECT setval(pg_get_serial_sequence('urlvideo', 'id'), 1, false)").Error
	case "sqlite":
		// sqlite_sequence only exists once an AUTOINCREMENT table has been created.
		if !db.Migrator().HasTable("sqlite_sequence") {
			return nil
		}
		return db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", models.Video{}.TableName()).Error
	default:
		return db.Exec("ALTER TABLE urlvideo AUTO_INCREMENT = 1").Error
	}
}
