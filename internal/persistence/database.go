package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/raziqtech/portal-api/internal/config"
	"github.com/raziqtech/portal-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SnapshotRow is the single document row a database-backed snapshotter
// maintains, keyed by the versioned snapshot key.
type SnapshotRow struct {
	SnapshotKey string    `gorm:"primaryKey;type:varchar(64)"`
	Data        []byte    `gorm:"type:blob"`
	UpdatedAt   time.Time
}

// TableName overrides the default pluralization.
func (SnapshotRow) TableName() string {
	return "snapshots"
}

// Connect opens a gorm connection for the configured driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.PersistenceDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		db, err = gorm.Open(mysql.Open(dsn), gormCfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DBName), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported persistence driver: %s", cfg.PersistenceDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

// DatabaseSnapshotter stores the aggregate as one JSON document row,
// mirroring the versioned-key layout the browser persistence used.
type DatabaseSnapshotter struct {
	db  *gorm.DB
	key string
}

// NewDatabaseSnapshotter migrates the snapshots table and returns a
// snapshotter bound to the versioned key.
func NewDatabaseSnapshotter(db *gorm.DB) (*DatabaseSnapshotter, error) {
	if err := db.AutoMigrate(&SnapshotRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
	}
	return &DatabaseSnapshotter{db: db, key: SnapshotKey}, nil
}

func (s *DatabaseSnapshotter) Load() (*models.Snapshot, error) {
	var row SnapshotRow
	if err := s.db.First(&row, "snapshot_key = ?", s.key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(row.Data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *DatabaseSnapshotter) Save(snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	row := SnapshotRow{SnapshotKey: s.key, Data: data, UpdatedAt: time.Now()}
	err = s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
