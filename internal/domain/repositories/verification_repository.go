package repositories

import (
	"context"

	"comphub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// VerificationRepository defines KYC document data operations
type VerificationRepository interface {
	Create(ctx context.Context, doc *entities.VerificationDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationDocument, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VerificationDocument, error)
	// Exists reports whether the (user, document type, document number)
	// tuple was already submitted.
	Exists(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, docNumber string) (bool, error)
	Update(ctx context.Context, doc *entities.VerificationDocument) error
	ListPending(ctx context.Context, limit, offset int) ([]*entities.VerificationDocument, int64, error)
}
