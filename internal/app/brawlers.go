package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/auth"
	"github.com/oatrn/brawlhq/internal/domain"
)

var ErrBadCredentials = fmt.Errorf("invalid username or password")

type RegisterBrawler struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email"`
}

type LoginBrawler struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BrawlerService covers registration, login, and avatar upload.
type BrawlerService struct {
	brawlers BrawlerRepository
	tokens   *auth.TokenManager
	uploader ImageUploader
}

func NewBrawlerService(brawlers BrawlerRepository, tokens *auth.TokenManager, uploader ImageUploader) *BrawlerService {
	return &BrawlerService{brawlers: brawlers, tokens: tokens, uploader: uploader}
}

func (s *BrawlerService) Register(ctx context.Context, model RegisterBrawler) (domain.Passport, error) {
	if err := domain.ValidateRegistration(model.Username, model.Password, model.DisplayName); err != nil {
		return domain.Passport{}, err
	}

	hash, err := auth.HashPassword(model.Password)
	if err != nil {
		return domain.Passport{}, fmt.Errorf("hash password: %w", err)
	}

	brawler, err := s.brawlers.Create(ctx, model.Username, hash, model.DisplayName, model.Email)
	if err != nil {
		return domain.Passport{}, fmt.Errorf("create brawler: %w", err)
	}
	log.Info().Str("module", "app.brawlers").Str("username", brawler.Username).Msg("brawler registered")

	return s.issuePassport(brawler)
}

func (s *BrawlerService) Login(ctx context.Context, model LoginBrawler) (domain.Passport, error) {
	brawler, err := s.brawlers.FindByUsername(ctx, model.Username)
	if err != nil {
		return domain.Passport{}, ErrBadCredentials
	}
	if !auth.VerifyPassword(model.Password, brawler.PasswordHash) {
		return domain.Passport{}, ErrBadCredentials
	}
	return s.issuePassport(brawler)
}

func (s *BrawlerService) issuePassport(brawler domain.Brawler) (domain.Passport, error) {
	token, err := s.tokens.Generate(brawler.ID)
	if err != nil {
		return domain.Passport{}, fmt.Errorf("sign passport: %w", err)
	}
	return domain.Passport{
		Token:       token,
		DisplayName: brawler.DisplayName,
		AvatarURL:   brawler.AvatarURL,
	}, nil
}

// UploadAvatar pushes the image to the media host and stores the returned
// URL on the brawler.
func (s *BrawlerService) UploadAvatar(ctx context.Context, brawlerID domain.BrawlerID, base64Image string) (UploadedImage, error) {
	img, err := s.uploader.UploadBase64(ctx, base64Image, "avatars")
	if err != nil {
		return UploadedImage{}, fmt.Errorf("upload avatar: %w", err)
	}
	if err := s.brawlers.SetAvatarURL(ctx, brawlerID, img.URL); err != nil {
		return UploadedImage{}, fmt.Errorf("store avatar url: %w", err)
	}
	return img, nil
}
