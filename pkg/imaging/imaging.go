package imaging

import (
	"github.com/disintegration/imaging"

	domainerrors "comphub.backend/internal/domain/errors"
)

// MaxProfileImageDimension bounds stored profile images on their longest side
const MaxProfileImageDimension = 300

// NormalizeProfileImage rewrites the image at path so neither dimension
// exceeds MaxProfileImageDimension, preserving aspect ratio. Images
// already within bounds are left untouched. Files that cannot be decoded
// as an image yield ErrUnreadableImage.
func NormalizeProfileImage(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return domainerrors.NewError("failed to decode profile image", domainerrors.ErrUnreadableImage)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= MaxProfileImageDimension && bounds.Dy() <= MaxProfileImageDimension {
		return nil
	}

	resized := imaging.Fit(img, MaxProfileImageDimension, MaxProfileImageDimension, imaging.Lanczos)
	if err := imaging.Save(resized, path); err != nil {
		return domainerrors.NewError("failed to save resized profile image", err)
	}
	return nil
}
