package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db          *gorm.DB
	sessionRepo *SessionRepo
}

// Open connects to a postgres or sqlite database and migrates the session table
func Open(driver, dsn string) (Database, error) {
	if dsn == "" {
		return Database{}, errs.NewMissingRequiredFieldError("dsn")
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return Database{}, errs.NewInvalidFieldError("driver", fmt.Sprintf("unsupported driver %q", driver))
	}

	newLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return Database{}, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.SessionRecord{}); err != nil {
		return Database{}, fmt.Errorf("migrate session table: %w", err)
	}

	return New(db), nil
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		sessionRepo: NewSessionRepo(db),
	}
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

// Close releases the underlying connection pool
func (d Database) Close() error {
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
