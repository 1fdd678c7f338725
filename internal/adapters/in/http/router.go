// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"revendo/internal/adapters/in/http/handlers"
	"revendo/internal/adapters/in/http/middleware"
	"revendo/internal/adapters/out/mail"
	"revendo/internal/application/livecache"
	"revendo/internal/application/query"
	"revendo/internal/application/usecase"
	saledom "revendo/internal/domain/sale"
)

// RouterDeps collects everything injected from the DI container.
type RouterDeps struct {
	FirebaseAuth  *middleware.FirebaseAuthClient
	ConsoleOrigin string

	Hub      *livecache.Hub
	SaleRepo saledom.Repository

	AssignmentUC *usecase.AssignmentUsecase
	FragmentUC   *usecase.FragmentationUsecase
	RenewalUC    *usecase.RenewalUsecase
	StockUC      *usecase.StockUsecase
	CatalogUC    *usecase.CatalogUsecase
	ClientUC     *usecase.ClientDirectoryUsecase
	BrandingUC   *usecase.BrandingUsecase
	ImportUC     *usecase.ImportUsecase

	PortalQuery    *query.PortalQuery
	ReminderMailer mail.ReminderMailerPort // nil disables /alerts/digest
}

// NewRouter mounts the console surface. Authenticated routes sit behind
// the Firebase bearer check; /portal and /healthz stay open.
func NewRouter(deps RouterDeps) http.Handler {
	confirms := handlers.NewConfirmRegistry()

	authed := http.NewServeMux()

	if deps.SaleRepo != nil && deps.AssignmentUC != nil && deps.FragmentUC != nil && deps.RenewalUC != nil {
		authed.Handle("/sales/", handlers.NewSaleHandler(
			deps.Hub, deps.SaleRepo, deps.AssignmentUC, deps.FragmentUC, deps.RenewalUC, confirms))
	}
	if deps.StockUC != nil {
		authed.Handle("/stock/", handlers.NewStockHandler(deps.StockUC, confirms))
	}
	if deps.CatalogUC != nil {
		authed.Handle("/catalog/", handlers.NewCatalogHandler(deps.CatalogUC, confirms))
	}
	if deps.ClientUC != nil && deps.SaleRepo != nil {
		authed.Handle("/clients/", handlers.NewClientHandler(deps.Hub, deps.SaleRepo, deps.ClientUC))
	}
	if deps.SaleRepo != nil {
		authed.Handle("/alerts/", handlers.NewAlertHandler(deps.Hub, deps.SaleRepo, deps.ReminderMailer))
	}
	if deps.BrandingUC != nil {
		authed.Handle("/branding/", handlers.NewBrandingHandler(deps.BrandingUC))
	}
	if deps.ImportUC != nil {
		authed.Handle("/import/", handlers.NewImportHandler(deps.ImportUC))
	}
	if deps.Hub != nil {
		authed.Handle("/session/", handlers.NewSessionHandler(deps.Hub))
	}
	authed.Handle("/confirm/", handlers.NewConfirmHandler(confirms))

	auth := &middleware.AuthMiddleware{FirebaseAuth: deps.FirebaseAuth}

	root := http.NewServeMux()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.PortalQuery != nil {
		root.Handle("/portal/", handlers.NewPortalHandler(deps.PortalQuery))
	}
	root.Handle("/", auth.Handler(authed))

	// CORS outermost so even panics answered by Recover carry the headers.
	return middleware.CORS(deps.ConsoleOrigin)(middleware.Recover(root))
}
