package assignmentrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM batch repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch. A second open batch for the same courier violates the
// partial unique index and is reported as a ConflictError.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("courier", aggregate.CourierID(),
				errors.New("courier already has an open batch"))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the assign time and completion flag of a batch.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"assigned_at": dto.AssignedAt,
		"complete":    dto.Complete,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a batch by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	batches, err := r.withMembers(ctx, []AssignmentDTO{dto})
	if err != nil {
		return nil, err
	}
	return batches[0], nil
}

// FindOpen retrieves the courier's open batch, or nil when there is none.
func (r *GormAssignmentRepository) FindOpen(ctx context.Context, courierID int64) (*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND complete = ?", courierID, false).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, nil //nolint:nilnil // absence of an open batch is a valid state
	}

	batches, err := r.withMembers(ctx, dtos)
	if err != nil {
		return nil, err
	}
	return batches[0], nil
}

// ListCompleted retrieves the courier's completed batches, oldest first.
func (r *GormAssignmentRepository) ListCompleted(ctx context.Context, courierID int64) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND complete = ?", courierID, true).
		Order("assigned_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.withMembers(ctx, dtos)
}

// withMembers loads the member order ids of every batch in one query.
func (r *GormAssignmentRepository) withMembers(ctx context.Context, dtos []AssignmentDTO) ([]*assignment.Assignment, error) {
	batches := make([]*assignment.Assignment, 0, len(dtos))
	if len(dtos) == 0 {
		return batches, nil
	}

	ids := make([]uuid.UUID, len(dtos))
	for i, dto := range dtos {
		ids[i] = dto.ID
	}

	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("orders").
		Select("id, assignment_id").
		Where("assignment_id IN ?", ids).
		Order("created_at, id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make(map[uuid.UUID][]int64, len(dtos))
	for _, row := range rows {
		members[row.AssignmentID] = append(members[row.AssignmentID], row.ID)
	}

	for _, dto := range dtos {
		a, err := toDomain(dto, members[dto.ID])
		if err != nil {
			return nil, err
		}
		batches = append(batches, a)
	}
	return batches, nil
}
