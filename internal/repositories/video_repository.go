package repositories

import (
	"context"

	"videohub/internal/models"
)

// VideoRepository defines the interface for video data access.
type VideoRepository interface {
	GetAll(ctx context.Context) ([]models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	// DeleteByTitle removes every row whose title matches exactly and reports how many went.
	DeleteByTitle(ctx context.Context, title string) (int64, error)
	// DeleteAll removes every row and restarts the id sequence at 1.
	DeleteAll(ctx context.Context) error
}
