package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/specification"
	"matchchat-be/internal/repository/unitofwork"
	"matchchat-be/pkg/events"
	pktNats "matchchat-be/pkg/nats"
	"matchchat-be/pkg/roomkey"
)

type IProfileService interface {
	Get(ctx context.Context, email string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, email string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadImage(ctx context.Context, email string, file *multipart.FileHeader) (string, error)
	DeleteAccount(ctx context.Context, email string) error
}

type profileService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	uploadDir        string
	baseURL          string
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	uploadDir string,
	baseURL string,
) IProfileService {
	return &profileService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		uploadDir:        uploadDir,
		baseURL:          baseURL,
	}
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		Email:     p.Email,
		Name:      p.Name,
		Gender:    string(p.Gender),
		Birthdate: p.Birthdate,
		Mbti:      p.Mbti,
		Bio:       p.Bio,
		Tags:      p.Tags,
		LikeTags:  p.LikeTags,
	}
	if p.ImageURL != nil {
		resp.ImageURL = *p.ImageURL
	}
	return resp
}

func (s *profileService) Get(ctx context.Context, email string) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) Update(ctx context.Context, email string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}

	profile.Name = req.Name
	profile.Gender = entity.Gender(req.Gender)
	profile.Birthdate = req.Birthdate
	profile.Mbti = req.Mbti
	profile.Bio = req.Bio
	profile.Tags = req.Tags
	profile.LikeTags = req.LikeTags
	profile.UpdatedAt = time.Now()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, err
	}

	s.notifyProfileChanged(ctx, email)

	return toProfileResponse(profile), nil
}

func (s *profileService) UploadImage(ctx context.Context, email string, file *multipart.FileHeader) (string, error) {
	if file.Size > 2*1024*1024 {
		return "", fmt.Errorf("file too large (max 2MB)")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", roomkey.Sanitize(email), time.Now().Unix(), ext)
	dstPath := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/uploads/%s", s.baseURL, filename)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProfileRepository().UpdateImageURL(ctx, email, publicURL); err != nil {
		return "", err
	}

	s.notifyProfileChanged(ctx, email)

	return publicURL, nil
}

// DeleteAccount removes the user and every row they own. Conversation
// summaries owned by the user go too; the peer keeps their copy, matching the
// per-owner summary model.
func (s *profileService) DeleteAccount(ctx context.Context, email string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil || user == nil {
		return errors.New("user not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().DeleteByOwner(ctx, email); err != nil {
		return err
	}
	if err := uow.ProfileRepository().DeleteByUserId(ctx, user.Id); err != nil {
		return err
	}
	if err := uow.UserRepository().Delete(ctx, user.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeUserDeleted,
			Data: map[string]interface{}{
				"email": email,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_DELETED event: %v\n", err)
		}
	}

	s.notifyProfileChanged(ctx, email)

	return nil
}

func (s *profileService) notifyProfileChanged(ctx context.Context, email string) {
	if s.publisherService == nil {
		return
	}
	payload, _ := json.Marshal(dto.ProfileChangedMessage{Email: email})
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish profile change: %v\n", err)
	}
}
