// ABOUTME: Repository interface for health data storage.
// ABOUTME: Defines the contract for users, records, goals, profiles, catalog, and export.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

// Repository defines the storage interface for health data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Record operations
	CreateRecord(ctx context.Context, r *models.MetricRecord) error
	CreateRecords(ctx context.Context, records []*models.MetricRecord) (int, error)
	GetRecord(ctx context.Context, userID uuid.UUID, idOrPrefix string) (*models.MetricRecord, error)
	ListRecords(ctx context.Context, userID uuid.UUID, f RecordFilter) ([]*models.MetricRecord, int, error)
	UpdateRecord(ctx context.Context, r *models.MetricRecord) error
	DeleteRecord(ctx context.Context, userID uuid.UUID, idOrPrefix string) error
	FindLatestByTypes(ctx context.Context, userID uuid.UUID, types []models.MetricType) (map[models.MetricType]*models.MetricRecord, error)
	FindByDateRange(ctx context.Context, userID uuid.UUID, types []models.MetricType, start, end time.Time) ([]*models.MetricRecord, error)
	AggregateByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Statistics, error)

	// Goals and personalization
	FindGoalsWithDefaults(ctx context.Context, userID uuid.UUID) (*models.HealthGoals, error)
	UpsertGoals(ctx context.Context, g *models.HealthGoals) error
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.PersonalizationProfile, error)
	CreateProfile(ctx context.Context, p *models.PersonalizationProfile) error
	UpsertProfile(ctx context.Context, p *models.PersonalizationProfile) error
	UpdateDoctorNotes(ctx context.Context, userID uuid.UUID, notes string) error
	DeleteProfile(ctx context.Context, userID uuid.UUID) error

	// Catalog
	ListTips(ctx context.Context, f TipFilter) ([]*models.HealthTip, error)
	GetTip(ctx context.Context, id uuid.UUID) (*models.HealthTip, error)
	TipCategories(ctx context.Context) ([]string, error)
	ListExercises(ctx context.Context, f models.ExerciseFilter) ([]*models.ExerciseAdvice, error)
	WeatherTypes(ctx context.Context) ([]string, error)
	RecommendExercises(ctx context.Context, weather, timeSlot string, limit int) ([]*models.ExerciseAdvice, error)

	// Export/Import
	GetAllData(ctx context.Context, userID uuid.UUID) (*ExportData, error)
	ImportData(ctx context.Context, userID uuid.UUID, data *ExportData) (*ImportSummary, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)
