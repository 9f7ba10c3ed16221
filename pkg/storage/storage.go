package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded files under opaque relative paths
type Store interface {
	Save(path string, r io.Reader) error
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
	AbsPath(path string) string
}

// LocalStore keeps files on the local filesystem under a media root
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at the given directory
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) AbsPath(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *LocalStore) Save(path string, r io.Reader) error {
	abs := s.AbsPath(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(s.AbsPath(path))
}

func (s *LocalStore) Remove(path string) error {
	err := os.Remove(s.AbsPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ProfileImagePath builds the storage path for a profile image upload.
// The original file name only contributes its extension; the stored name
// is a fresh UUID so paths never collide or leak the client's file name.
func ProfileImagePath(userID uuid.UUID, originalName string) string {
	return fmt.Sprintf("profile_images/%s/%s%s", userID, uuid.New(), normalizedExt(originalName))
}

// ShopLogoPath builds the storage path for a vendor shop logo upload
func ShopLogoPath(userID uuid.UUID, originalName string) string {
	return fmt.Sprintf("shop_logos/%s/%s%s", userID, uuid.New(), normalizedExt(originalName))
}

// VerificationDocumentPath builds the storage path for a verification
// document upload.
func VerificationDocumentPath(userID uuid.UUID, originalName string) string {
	return fmt.Sprintf("verification_docs/%s/verification_%s%s", userID, uuid.New(), normalizedExt(originalName))
}

func normalizedExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "." {
		return ""
	}
	return ext
}
