package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType represents KYC document kinds
type DocumentType string

const (
	DocumentNationalID     DocumentType = "national_id"
	DocumentPassport       DocumentType = "passport"
	DocumentBusinessPermit DocumentType = "business_permit"
	DocumentKRAPin         DocumentType = "kra_pin"
	DocumentBankStatement  DocumentType = "bank_statement"
	DocumentUtilityBill    DocumentType = "utility_bill"
	DocumentShopPhoto      DocumentType = "shop_photo"
	DocumentOther          DocumentType = "other"
)

// ValidDocumentType reports whether t is a known document type
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentNationalID, DocumentPassport, DocumentBusinessPermit, DocumentKRAPin,
		DocumentBankStatement, DocumentUtilityBill, DocumentShopPhoto, DocumentOther:
		return true
	}
	return false
}

// VerificationDocument represents a single KYC document submission.
// The (UserID, DocumentType, DocumentNumber) tuple is unique.
type VerificationDocument struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"userId"`
	DocumentType      DocumentType  `json:"documentType"`
	DocumentFile      string        `json:"documentFile"`
	DocumentNumber    string        `json:"documentNumber"`
	SubmittedAt       time.Time     `json:"submittedAt"`
	VerifiedBy        uuid.NullUUID `json:"verifiedBy,omitempty"`
	VerifiedAt        null.Time     `json:"verifiedAt,omitempty"`
	VerificationNotes string        `json:"verificationNotes"`
	IsApproved        bool          `json:"isApproved"`
	ExpiryDate        null.Time     `json:"expiryDate,omitempty"`
	IsPrimary         bool          `json:"isPrimary"`
}

// SubmitDocumentInput represents input for submitting a KYC document
type SubmitDocumentInput struct {
	DocumentType   DocumentType `json:"documentType" binding:"required"`
	DocumentNumber string       `json:"documentNumber,omitempty" binding:"omitempty,max=50"`
	ExpiryDate     *time.Time   `json:"expiryDate,omitempty"`
	IsPrimary      bool         `json:"isPrimary"`
}

// ReviewDocumentInput represents input for a verifier reviewing a document
type ReviewDocumentInput struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// SetVerificationStatusInput represents input for transitioning an
// account's verification status
type SetVerificationStatusInput struct {
	Status VerificationStatus `json:"status" binding:"required"`
}
