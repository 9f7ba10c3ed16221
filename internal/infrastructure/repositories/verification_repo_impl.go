package repositories

import (
	"context"
	"errors"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// VerificationRepository implements KYC document data operations
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create creates a new verification document record
func (r *VerificationRepository) Create(ctx context.Context, doc *entities.VerificationDocument) error {
	m := toVerificationModel(doc)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateDocument
		}
		return err
	}
	return nil
}

// GetByID gets a verification document by ID
func (r *VerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationDocument, error) {
	var m models.UserVerification
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toVerificationEntity(&m), nil
}

// ListByUser lists a user's verification documents, newest submission first
func (r *VerificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VerificationDocument, error) {
	var docModels []models.UserVerification
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&docModels).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entities.VerificationDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, toVerificationEntity(&docModels[i]))
	}
	return docs, nil
}

// Exists reports whether the (user, type, number) tuple was already submitted
func (r *VerificationRepository) Exists(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, docNumber string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserVerification{}).
		Where("user_id = ? AND document_type = ? AND document_number = ?", userID, string(docType), docNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes the review outcome fields
func (r *VerificationRepository) Update(ctx context.Context, doc *entities.VerificationDocument) error {
	updates := map[string]interface{}{
		"is_approved":        doc.IsApproved,
		"verified_by":        uuidPtr(doc.VerifiedBy),
		"verified_at":        doc.VerifiedAt.Ptr(),
		"verification_notes": doc.VerificationNotes,
		"is_primary":         doc.IsPrimary,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserVerification{}).Where("id = ?", doc.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListPending lists unreviewed documents, oldest submission first
func (r *VerificationRepository) ListPending(ctx context.Context, limit, offset int) ([]*entities.VerificationDocument, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserVerification{}).
		Where("is_approved = ? AND verified_at IS NULL", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("submitted_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var docModels []models.UserVerification
	if err := query.Find(&docModels).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]*entities.VerificationDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, toVerificationEntity(&docModels[i]))
	}
	return docs, total, nil
}

func toVerificationModel(d *entities.VerificationDocument) *models.UserVerification {
	return &models.UserVerification{
		ID:                d.ID,
		UserID:            d.UserID,
		DocumentType:      string(d.DocumentType),
		DocumentFile:      d.DocumentFile,
		DocumentNumber:    d.DocumentNumber,
		SubmittedAt:       d.SubmittedAt,
		VerifiedBy:        uuidPtr(d.VerifiedBy),
		VerifiedAt:        d.VerifiedAt.Ptr(),
		VerificationNotes: d.VerificationNotes,
		IsApproved:        d.IsApproved,
		ExpiryDate:        d.ExpiryDate.Ptr(),
		IsPrimary:         d.IsPrimary,
	}
}

func toVerificationEntity(m *models.UserVerification) *entities.VerificationDocument {
	return &entities.VerificationDocument{
		ID:                m.ID,
		UserID:            m.UserID,
		DocumentType:      entities.DocumentType(m.DocumentType),
		DocumentFile:      m.DocumentFile,
		DocumentNumber:    m.DocumentNumber,
		SubmittedAt:       m.SubmittedAt,
		VerifiedBy:        nullUUIDFromPtr(m.VerifiedBy),
		VerifiedAt:        null.TimeFromPtr(m.VerifiedAt),
		VerificationNotes: m.VerificationNotes,
		IsApproved:        m.IsApproved,
		ExpiryDate:        null.TimeFromPtr(m.ExpiryDate),
		IsPrimary:         m.IsPrimary,
	}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func nullUUIDFromPtr(p *uuid.UUID) uuid.NullUUID {
	if p == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *p, Valid: true}
}
