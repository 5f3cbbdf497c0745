// Package requesterrepo persists requester profiles in PostgreSQL via GORM.
package requesterrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/requester"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/i18n"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequesterDTO is the database row for a requester profile. The primary
// key is the transport actor id, or one of the synthetic ids given to
// requesters who have never messaged the service directly.
type RequesterDTO struct {
	ID          string `gorm:"primaryKey"`
	DisplayName string `gorm:"index"`
	Locale      string
}

// TableName overrides GORM's default naming to use "requesters".
func (RequesterDTO) TableName() string {
	return "requesters"
}

func fromDomain(aggregate *requester.Requester) RequesterDTO {
	s := aggregate.Snapshot()
	return RequesterDTO{
		ID:          s.ID,
		DisplayName: s.DisplayName,
		Locale:      s.Locale.String(),
	}
}

func toDomain(dto RequesterDTO) (*requester.Requester, error) {
	return requester.RestoreRequester(requester.Snapshot{
		ID:          dto.ID,
		DisplayName: dto.DisplayName,
		Locale:      i18n.ParseLocale(dto.Locale),
	})
}

// GormRequesterRepository implements ports.RequesterRepository using GORM.
type GormRequesterRepository struct {
	db *gorm.DB
}

// NewGormRequesterRepository creates a new GORM requester repository.
func NewGormRequesterRepository(db *gorm.DB) (*GormRequesterRepository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &GormRequesterRepository{db: db}, nil
}

// Update saves an existing requester to the database.
func (r *GormRequesterRepository) Update(ctx context.Context, aggregate *requester.Requester) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RequesterDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("requester", aggregate.ID())
	}

	return nil
}

// Get retrieves a requester by id.
func (r *GormRequesterRepository) Get(ctx context.Context, id string) (*requester.Requester, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	var dto RequesterDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requester", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindOrCreate retrieves the requester with the given id, creating one
// lazily on first contact.
func (r *GormRequesterRepository) FindOrCreate(
	ctx context.Context, id, displayName string,
) (*requester.Requester, error) {
	existing, err := r.Get(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	fresh, err := requester.NewRequester(id, displayName)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(fresh)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// FindByDisplayName retrieves a requester by their visible name.
func (r *GormRequesterRepository) FindByDisplayName(
	ctx context.Context, name string,
) (*requester.Requester, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto RequesterDTO
	err := r.db.WithContext(ctx).
		Where("display_name = ?", name).
		Order("id ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requester", name)
		}
		return nil, err
	}

	return toDomain(dto)
}
