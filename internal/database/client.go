// Package database archives completed simulation runs.
package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/pkg/config"
)

// Client holds the connection to the run archive database
type Client struct {
	archive *config.ArchiveData
	DB      *gorm.DB // Exported so it can be accessed from other packages
}

// NewClient creates a new archive client. Connect must be called before use.
func NewClient(archive *config.ArchiveData) *Client {
	return &Client{
		archive: archive,
	}
}

// Connect opens the archive database and migrates its schema. Postgres is
// used when a connection string is configured, SQLite otherwise.
func (c *Client) Connect() error {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,       // Disable color
		},
	)

	gormConfig := &gorm.Config{
		Logger: dbLogger,
	}

	var err error
	if c.archive != nil && c.archive.Postgres != "" {
		log.Info("connecting to Postgres run archive...")
		c.DB, err = gorm.Open(postgres.Open(c.archive.Postgres), gormConfig)
	} else {
		path := "solarsim-runs.db"
		if c.archive != nil && c.archive.SQLite != "" {
			path = c.archive.SQLite
		}
		log.Infof("opening SQLite run archive %s", path)
		c.DB, err = gorm.Open(sqlite.Open(path), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("unable to open run archive: %w", err)
	}

	if err := c.DB.AutoMigrate(&SimulationRun{}); err != nil {
		return fmt.Errorf("unable to migrate run archive schema: %w", err)
	}
	return nil
}
