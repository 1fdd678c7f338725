// internal/application/usecase/branding_usecase.go
package usecase

import (
	"context"
	"errors"

	brdom "revendo/internal/domain/branding"
)

// BrandingUsecase manages the vendor's display name and logo.
type BrandingUsecase struct {
	repo  brdom.Repository
	logos brdom.LogoStore // nil-tolerant: logo upload disabled without GCS
}

func NewBrandingUsecase(repo brdom.Repository, logos brdom.LogoStore) *BrandingUsecase {
	return &BrandingUsecase{repo: repo, logos: logos}
}

func (uc *BrandingUsecase) Get(ctx context.Context, vendorID string) (brdom.Config, error) {
	cfg, err := uc.repo.Get(ctx, vendorID)
	if err != nil {
		return brdom.Config{}, err
	}
	if cfg.LogoObject != "" && uc.logos != nil {
		cfg.LogoURL = uc.logos.PublicURL(cfg.LogoObject)
	}
	return cfg, nil
}

func (uc *BrandingUsecase) Save(ctx context.Context, vendorID string, cfg brdom.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return uc.repo.Save(ctx, vendorID, cfg)
}

// UploadLogo stores the logo binary and points the branding doc at it.
func (uc *BrandingUsecase) UploadLogo(ctx context.Context, vendorID, fileName string, data []byte, contentType string) (brdom.Config, error) {
	if uc.logos == nil {
		return brdom.Config{}, errors.New("branding: logo storage not configured")
	}
	objectPath, err := uc.logos.Upload(ctx, vendorID, fileName, data, contentType)
	if err != nil {
		return brdom.Config{}, err
	}
	cfg, err := uc.repo.Get(ctx, vendorID)
	if err != nil && !errors.Is(err, brdom.ErrNotConfigured) {
		return brdom.Config{}, err
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = vendorID
	}
	cfg.LogoObject = objectPath
	if err := uc.repo.Save(ctx, vendorID, cfg); err != nil {
		return brdom.Config{}, err
	}
	cfg.LogoURL = uc.logos.PublicURL(objectPath)
	return cfg, nil
}
