package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
	"github.com/quiniela26/prediction-system/storage"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Profile struct {
	User      *models.User `json:"user"`
	AvatarURL string       `json:"avatar_url,omitempty"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*Profile, error)
	// UploadAvatar stores the image in the object store and records its key
	// on the user. The previous avatar object, if any, is removed.
	UploadAvatar(ctx context.Context, userID int, contentType string, body io.Reader) (*Profile, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

// NewUserService accepts a nil uploader; avatar uploads then fail with
// ErrUploadsDisabled while the rest of the profile keeps working.
func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return s.profileOf(user), nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, body io.Reader) (*Profile, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	key := fmt.Sprintf("avatars/%d%s", userID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to record avatar key: %w", err)
	}

	// Drop the old object when the extension changed; best effort.
	if user.AvatarKey != nil && *user.AvatarKey != result.Key {
		_ = s.uploader.Delete(ctx, *user.AvatarKey)
	}

	user.AvatarKey = &result.Key
	return s.profileOf(user), nil
}

func (s *userService) profileOf(user *models.User) *Profile {
	p := &Profile{User: user}
	if s.uploader != nil && user.AvatarKey != nil {
		p.AvatarURL = s.uploader.PublicURL(*user.AvatarKey)
	}
	return p
}
