package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/seed"
)

// LoadSeed creates the schema and copies the seed dataset into db inside a
// single transaction.
func LoadSeed(ctx context.Context, db *gorm.DB, dataset *seed.Dataset) error {
	if dataset == nil {
		return fmt.Errorf("seed dataset is nil")
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Course{}, &models.Progress{}, &models.LearningPath{}); err != nil {
		return fmt.Errorf("migrate mock store: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(dataset.Users) > 0 {
			if err := tx.Create(&dataset.Users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(dataset.Courses) > 0 {
			if err := tx.Create(&dataset.Courses).Error; err != nil {
				return fmt.Errorf("seed courses: %w", err)
			}
		}
		if len(dataset.Progress) > 0 {
			if err := tx.Create(&dataset.Progress).Error; err != nil {
				return fmt.Errorf("seed progress: %w", err)
			}
		}
		if len(dataset.LearningPaths) > 0 {
			if err := tx.Create(&dataset.LearningPaths).Error; err != nil {
				return fmt.Errorf("seed learning paths: %w", err)
			}
		}
		return nil
	})
}
