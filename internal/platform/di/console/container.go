// internal/platform/di/console/container.go
package console

import (
	"context"
	"errors"
	"log"

	httpin "revendo/internal/adapters/in/http"
	pg "revendo/internal/adapters/out/db"
	fs "revendo/internal/adapters/out/firestore"
	gcsout "revendo/internal/adapters/out/gcs"
	mailout "revendo/internal/adapters/out/mail"
	"revendo/internal/application/livecache"
	"revendo/internal/application/query"
	uc "revendo/internal/application/usecase"
	"revendo/internal/domain/platforms"
	saledom "revendo/internal/domain/sale"
	shared "revendo/internal/platform/di/shared"
)

// ========================================
// Container (Console DI)
// ========================================
type Container struct {
	Infra *shared.Infra

	// Repositories
	SaleRepo     *fs.SaleRepositoryFS
	CatalogRepo  *fs.CatalogRepositoryFS
	ClientRepo   *fs.ClientRepositoryFS
	BrandingRepo *fs.BrandingRepositoryFS
	PortalReader *fs.PortalReaderFS
	Archive      *pg.SaleArchivePG // nil when DATABASE_URL is unset

	// Live cache
	Hub *livecache.Hub

	// Application-layer usecases
	AssignmentUC *uc.AssignmentUsecase
	FragmentUC   *uc.FragmentationUsecase
	RenewalUC    *uc.RenewalUsecase
	StockUC      *uc.StockUsecase
	CatalogUC    *uc.CatalogUsecase
	ClientUC     *uc.ClientDirectoryUsecase
	BrandingUC   *uc.BrandingUsecase
	ImportUC     *uc.ImportUsecase

	PortalQuery    *query.PortalQuery
	ReminderMailer mailout.ReminderMailerPort
}

// NewContainer wires repositories, usecases and queries on top of the
// shared infra.
func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil || infra.Firestore == nil {
		return nil, errors.New("di.console: infra/firestore not initialized")
	}
	cfg := infra.Config

	// Platform bucketing policy is process-wide; resolve it once at boot.
	platforms.SetPolicyFromString(cfg.DisneySplitPolicy)

	c := &Container{Infra: infra}

	// ---- Repositories (Firestore) ----
	c.SaleRepo = fs.NewSaleRepositoryFS(infra.Firestore)
	c.CatalogRepo = fs.NewCatalogRepositoryFS(infra.Firestore)
	c.ClientRepo = fs.NewClientRepositoryFS(infra.Firestore)
	c.BrandingRepo = fs.NewBrandingRepositoryFS(infra.Firestore)
	c.PortalReader = fs.NewPortalReaderFS(infra.Firestore)

	// ---- Optional Postgres mirror ----
	var archiver saledom.Archiver
	if cfg.DatabaseURL != "" {
		conn, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[di.console] WARN: postgres mirror unavailable: %v (archival disabled)", err)
		} else {
			c.Archive = pg.NewSaleArchivePG(conn)
			if err := c.Archive.EnsureSchema(ctx); err != nil {
				log.Printf("[di.console] WARN: mirror schema init failed: %v (archival disabled)", err)
				c.Archive = nil
			} else {
				archiver = c.Archive
				log.Printf("[di.console] postgres mirror enabled")
			}
		}
	}

	// ---- Live cache ----
	c.Hub = livecache.NewHub(fs.NewWatcherFS(infra.Firestore))

	// ---- Usecases ----
	c.ClientUC = uc.NewClientDirectoryUsecase(c.ClientRepo)
	c.AssignmentUC = uc.NewAssignmentUsecase(c.SaleRepo, c.CatalogRepo, c.ClientUC, archiver)
	c.FragmentUC = uc.NewFragmentationUsecase(c.SaleRepo, c.CatalogRepo, archiver)
	c.RenewalUC = uc.NewRenewalUsecase(c.SaleRepo)
	c.StockUC = uc.NewStockUsecase(c.SaleRepo, c.CatalogRepo)
	c.CatalogUC = uc.NewCatalogUsecase(c.CatalogRepo, c.SaleRepo)
	c.ImportUC = uc.NewImportUsecase()

	if infra.GCS != nil && cfg.BrandingLogoBucket != "" {
		logos := gcsout.NewBrandingLogoRepositoryGCS(infra.GCS, cfg.BrandingLogoBucket)
		c.BrandingUC = uc.NewBrandingUsecase(c.BrandingRepo, logos)
	} else {
		log.Printf("[di.console] branding logo store not configured (uploads disabled)")
		c.BrandingUC = uc.NewBrandingUsecase(c.BrandingRepo, nil)
	}

	// ---- Queries ----
	c.PortalQuery = query.NewPortalQuery(c.PortalReader)

	// ---- Reminder mail (env key first, Secret Manager fallback) ----
	key, err := mailout.ResolveSendGridKey(ctx, cfg.SendGridAPIKey, infra.ProjectID, cfg.SendGridKeySecret, infra.SecretManager)
	if err != nil {
		log.Printf("[di.console] WARN: sendgrid key not resolved: %v (expiry digest disabled)", err)
	} else {
		c.ReminderMailer = mailout.NewReminderMailer(mailout.NewSendGridClient(key), cfg.ReminderFromEmail)
		log.Printf("[di.console] reminder mailer initialized from=%s", cfg.ReminderFromEmail)
	}

	return c, nil
}

// RouterDeps projects the container into the HTTP layer's dependency set.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		FirebaseAuth:   c.Infra.FirebaseAuth,
		ConsoleOrigin:  c.Infra.Config.ConsoleOrigin,
		Hub:            c.Hub,
		SaleRepo:       c.SaleRepo,
		AssignmentUC:   c.AssignmentUC,
		FragmentUC:     c.FragmentUC,
		RenewalUC:      c.RenewalUC,
		StockUC:        c.StockUC,
		CatalogUC:      c.CatalogUC,
		ClientUC:       c.ClientUC,
		BrandingUC:     c.BrandingUC,
		ImportUC:       c.ImportUC,
		PortalQuery:    c.PortalQuery,
		ReminderMailer: c.ReminderMailer,
	}
}

// Close tears down watchers and the optional mirror connection.
func (c *Container) Close() error {
	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.Archive != nil && c.Archive.DB != nil {
		if err := c.Archive.DB.Close(); err != nil {
			return err
		}
		c.Archive = nil
	}
	return nil
}
