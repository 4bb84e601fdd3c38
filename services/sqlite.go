package services

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/engineer-english/eigo_api/model"
	"github.com/engineer-english/eigo_api/services/repositories"
	"github.com/engineer-english/eigo_api/shared"
)

// SqliteService is the file-backed alternative to PostgresService for local
// development and CI. Same repository surface, same migrations.
type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string

	contentRepo  *repositories.ContentRepository
	progressRepo *repositories.ProgressRepository
	userRepo     *repositories.UserRepository
}

const SQLITE_SVC = "sqlite_svc"

// Id returns Service ID
func (ds SqliteService) Id() string {
	return SQLITE_SVC
}

// Db Access to raw SqliteService db
func (ds *SqliteService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqliteService) Content() *repositories.ContentRepository {
	return ds.contentRepo
}

func (ds *SqliteService) Progress() *repositories.ProgressRepository {
	return ds.progressRepo
}

func (ds *SqliteService) Users() *repositories.UserRepository {
	return ds.userRepo
}

// Configure the service
func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DB_DATABASE")
	if ds.database == "" {
		ds.database = "eigo_api.db"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	err = ds.db.AutoMigrate(
		&model.User{},
		&model.Scene{},
		&model.Lesson{},
		&model.Phrase{},
		&model.Dialogue{},
		&model.UserProgress{},
	)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.contentRepo = repositories.NewContentRepository(ds.db)
	ds.progressRepo = repositories.NewProgressRepository(ds.db)
	ds.userRepo = repositories.NewUserRepository(ds.db)

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
}

func (ds *SqliteService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "no such table") {
			statusCode = http.StatusInternalServerError
			errorType = "SCHEMA_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return shared.NewAppError(statusCode, err, dbErrorMessage(errorType))
}
