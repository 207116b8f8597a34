package service

import (
	"context"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const photoURLExpiry = 15 * time.Minute

// PhotoUpload carries a presigned PUT URL the client uploads the photo to,
// and a presigned GET URL usable as the profile's photo reference.
type PhotoUpload struct {
	UploadURL string
	PhotoURL  string
}

// UserService manages user profiles.
type UserService interface {
	Get(ctx context.Context, uid string) (*model.User, error)
	UpdateProfile(ctx context.Context, uid string, displayName, photoURL *string) (*model.User, error)
	Delete(ctx context.Context, uid string) error
	PhotoUploadURL(ctx context.Context, uid string) (*PhotoUpload, error)
}

type userService struct {
	userRepo      repository.UserRepository
	presignClient *s3.PresignClient
	bucketName    string
	logger        zerolog.Logger
}

// NewUserService creates a new UserService. s3Client may be nil, which
// disables photo uploads.
func NewUserService(userRepo repository.UserRepository, s3Client *s3.Client, bucketName string, logger zerolog.Logger) UserService {
	svc := &userService{
		userRepo:   userRepo,
		bucketName: bucketName,
		logger:     logger.With().Str("service", "UserService").Logger(),
	}
	if s3Client != nil {
		svc.presignClient = s3.NewPresignClient(s3Client)
	}
	return svc
}

func (s *userService) Get(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, displayName, photoURL *string) (*model.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, uid, displayName, photoURL)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.logger.Info().Str("uid", uid).Msg("User profile updated")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, uid string) error {
	if err := s.userRepo.DeleteUser(ctx, uid); err != nil {
		return err
	}
	s.logger.Info().Str("uid", uid).Msg("User deleted")
	return nil
}

// PhotoUploadURL generates presigned PUT and GET URLs for the user's profile
// photo object.
func (s *userService) PhotoUploadURL(ctx context.Context, uid string) (*PhotoUpload, error) {
	if s.presignClient == nil {
		return nil, fmt.Errorf("photo storage is not configured")
	}

	objectKey := fmt.Sprintf("avatars/%s", uid)
	putReq, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(photoURLExpiry))
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", objectKey).Msg("Failed to generate presigned PUT URL")
		return nil, fmt.Errorf("failed to generate presigned PUT URL: %w", err)
	}

	getReq, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(photoURLExpiry))
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", objectKey).Msg("Failed to generate presigned GET URL")
		return nil, fmt.Errorf("failed to generate presigned GET URL: %w", err)
	}

	return &PhotoUpload{UploadURL: putReq.URL, PhotoURL: getReq.URL}, nil
}
