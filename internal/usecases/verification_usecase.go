package usecases

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/domain/repositories"
	"comphub.backend/pkg/storage"
	"comphub.backend/pkg/utils"
)

// VerificationUsecase handles KYC document submission and review
type VerificationUsecase struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	store            storage.Store
	audit            *AuditRecorder
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	store storage.Store,
	audit *AuditRecorder,
) *VerificationUsecase {
	return &VerificationUsecase{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		store:            store,
		audit:            audit,
	}
}

// SubmitDocument stores an uploaded KYC document and records its
// submission. Resubmitting the same (type, number) tuple is rejected.
func (u *VerificationUsecase) SubmitDocument(ctx context.Context, userID uuid.UUID, input *entities.SubmitDocumentInput, fileName string, r io.Reader, ip, userAgent string) (*entities.VerificationDocument, error) {
	if !entities.ValidDocumentType(input.DocumentType) {
		return nil, domainerrors.BadRequest("unknown document type")
	}

	exists, err := u.verificationRepo.Exists(ctx, userID, input.DocumentType, input.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrDuplicateDocument
	}

	path := storage.VerificationDocumentPath(userID, fileName)
	if err := u.store.Save(path, r); err != nil {
		return nil, err
	}

	doc := &entities.VerificationDocument{
		ID:             utils.GenerateUUIDv7(),
		UserID:         userID,
		DocumentType:   input.DocumentType,
		DocumentFile:   path,
		DocumentNumber: input.DocumentNumber,
		SubmittedAt:    time.Now(),
		IsPrimary:      input.IsPrimary,
	}
	if input.ExpiryDate != nil {
		doc.ExpiryDate.SetValid(*input.ExpiryDate)
	}

	if err := u.verificationRepo.Create(ctx, doc); err != nil {
		_ = u.store.Remove(path)
		return nil, err
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityVerificationSubmit, "verification document submitted", ip, userAgent, map[string]any{
		"document_type": string(input.DocumentType),
	})
	return doc, nil
}

// ReviewDocument records a verifier's decision on a submitted document.
// Approving a document deliberately also moves a pending account to
// verified, so the first approved document completes onboarding without
// a separate admin call.
func (u *VerificationUsecase) ReviewDocument(ctx context.Context, verifier *entities.User, docID uuid.UUID, input *entities.ReviewDocumentInput) (*entities.VerificationDocument, error) {
	if verifier == nil || verifier.UserType != entities.UserTypeAdmin {
		return nil, domainerrors.Forbidden("only verifiers can review documents")
	}

	doc, err := u.verificationRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc.IsApproved = input.Approve
	doc.VerificationNotes = input.Notes
	doc.VerifiedBy = uuid.NullUUID{UUID: verifier.ID, Valid: true}
	doc.VerifiedAt.SetValid(now)

	if err := u.verificationRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	if input.Approve {
		user, err := u.userRepo.GetByID(ctx, doc.UserID)
		if err != nil {
			return nil, err
		}
		if user.VerificationStatus == entities.VerificationPending {
			if err := u.userRepo.SetVerificationStatus(ctx, user.ID, entities.VerificationVerified, now); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

// ListUserDocuments returns the documents a user has submitted
func (u *VerificationUsecase) ListUserDocuments(ctx context.Context, userID uuid.UUID) ([]*entities.VerificationDocument, error) {
	return u.verificationRepo.ListByUser(ctx, userID)
}

// ListPending returns unreviewed documents for the verifier queue
func (u *VerificationUsecase) ListPending(ctx context.Context, verifier *entities.User, limit, offset int) ([]*entities.VerificationDocument, int64, error) {
	if verifier == nil || verifier.UserType != entities.UserTypeAdmin {
		return nil, 0, domainerrors.Forbidden("only verifiers can list pending documents")
	}
	return u.verificationRepo.ListPending(ctx, limit, offset)
}
