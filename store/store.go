package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/rakushite-inc/demo-obentou/config"
	"github.com/rakushite-inc/demo-obentou/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("not found")

const DefaultHistoryLimit = 50

type Store struct {
	db *gorm.DB
}

func Open(cfg config.Database) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Postgres.ConnStr())
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Sqlite.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.BentoMenu{}, &models.GenerationRecord{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

type MenuFilter struct {
	Genre        models.Genre
	SelectedOnly bool
}

type MenuStats struct {
	Count       int64   `json:"count"`
	Genres      int64   `json:"genres"`
	AvgPrice    float64 `json:"avgPrice"`
	AvgCalories float64 `json:"avgCalories"`
}

// SaveMenus stores menus that are not saved yet. Menus whose id already
// exists are left untouched. It returns the number of rows inserted.
func (s *Store) SaveMenus(ctx context.Context, menus []models.BentoMenu) (int64, error) {
	if len(menus) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&menus)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to save menus: %w", res.Error)
	}

	return res.RowsAffected, nil
}

func (s *Store) ListMenus(ctx context.Context, filter MenuFilter) ([]models.BentoMenu, error) {
	query := s.db.WithContext(ctx).Model(&models.BentoMenu{})
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.SelectedOnly {
		query = query.Where("is_selected = ?", true)
	}

	menus := []models.BentoMenu{}
	if err := query.Order("created_at DESC").Order("id").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	return menus, nil
}

func (s *Store) GetMenu(ctx context.Context, id string) (*models.BentoMenu, error) {
	var menu models.BentoMenu
	if err := s.db.WithContext(ctx).First(&menu, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu %s: %w", id, err)
	}

	return &menu, nil
}

func (s *Store) DeleteMenu(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.BentoMenu{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete menu %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Store) SetSelected(ctx context.Context, id string, selected bool) (*models.BentoMenu, error) {
	res := s.db.WithContext(ctx).
		Model(&models.BentoMenu{}).
		Where("id = ?", id).
		Update("is_selected", selected)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update menu %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.GetMenu(ctx, id)
}

// MenuStats summarizes the saved menus. Averages are rounded to whole yen and
// kcal. All fields are zero when nothing is saved.
func (s *Store) MenuStats(ctx context.Context) (MenuStats, error) {
	var stats MenuStats
	err := s.db.WithContext(ctx).
		Model(&models.BentoMenu{}).
		Select("COUNT(*) AS count, COUNT(DISTINCT genre) AS genres, " +
			"COALESCE(AVG(estimated_price), 0) AS avg_price, " +
			"COALESCE(AVG(estimated_calories), 0) AS avg_calories").
		Scan(&stats).Error
	if err != nil {
		return MenuStats{}, fmt.Errorf("failed to compute menu stats: %w", err)
	}
	stats.AvgPrice = math.Round(stats.AvgPrice)
	stats.AvgCalories = math.Round(stats.AvgCalories)

	return stats, nil
}

// CreateGenerationRecord inserts a record once. A redelivered record with a
// known id is ignored.
func (s *Store) CreateGenerationRecord(ctx context.Context, record *models.GenerationRecord) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to create generation record: %w", err)
	}

	return nil
}

func (s *Store) ListGenerationRecords(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records := []models.GenerationRecord{}
	err := s.db.WithContext(ctx).
		Order("generated_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list generation records: %w", err)
	}

	return records, nil
}
