package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"prema-telhados/go_backend/internal/app/config"
	apphttp "prema-telhados/go_backend/internal/app/http"
	"prema-telhados/go_backend/internal/app/http/handlers"
	"prema-telhados/go_backend/internal/app/workspace"
	"prema-telhados/go_backend/internal/domain/auth"
	"prema-telhados/go_backend/internal/domain/catalog"
	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/domain/quote/pdf/gofpdf"
	"prema-telhados/go_backend/internal/infra/db/postgres"
	"prema-telhados/go_backend/internal/infra/memory"
	"prema-telhados/go_backend/internal/obs"
)

// Run serves the API until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	obs.InitLogger(cfg.LogLevel)

	archive, closeArchive, err := openArchive(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeArchive()

	fetcher := catalog.NewFetcher(&http.Client{Timeout: cfg.Catalog.Timeout}, cfg.Catalog.LocalDelay)
	loader := catalog.NewLoader(fetcher, catalog.Mode(cfg.Catalog.Mode), cfg.Catalog.URL)
	go loader.Reload(ctx)

	company := companyFrom(cfg.Company)
	h := &handlers.Handlers{
		Cfg:      cfg,
		Catalog:  loader,
		Accounts: auth.NewDirectory(accountsFrom(cfg.Accounts)),
		Sessions: auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieSecure),
		Drafts:   workspace.New(workspace.Options{Company: company, ValidityDays: cfg.Quote.ValidityDays}),
		PDF:      gofpdf.New(cfg.FontDir),
		Archive:  archive,
		Company:  company,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		obs.Logger.Info("http_listening", "addr", cfg.HTTPAddr, "catalog_mode", cfg.Catalog.Mode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	obs.Logger.Info("http_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openArchive uses postgres when a DSN is configured and memory otherwise.
func openArchive(ctx context.Context, dsn string) (quote.Archive, func(), error) {
	if dsn == "" {
		obs.Logger.Warn("proposal_archive_in_memory")
		return memory.NewProposals(), func() {}, nil
	}
	if err := postgres.Migrate(dsn); err != nil {
		return nil, nil, fmt.Errorf("db migrate: %w", err)
	}
	db, err := postgres.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	return postgres.NewProposals(db), db.Close, nil
}

func companyFrom(c config.CompanyConfig) quote.Company {
	return quote.Company{
		Name:         c.Name,
		Contact:      c.Contact,
		Conditions:   c.Conditions,
		ServiceTerms: c.ServiceTerms,
	}.Merge(quote.DefaultCompany())
}

func accountsFrom(cfg []config.AccountConfig) []auth.Account {
	out := make([]auth.Account, 0, len(cfg))
	for _, a := range cfg {
		out = append(out, auth.Account{
			Username:     a.Username,
			PasswordHash: a.PasswordHash,
			Estimator: quote.Estimator{
				Name:  a.Estimator.Name,
				Email: a.Estimator.Email,
				Phone: a.Estimator.Phone,
			},
		})
	}
	return out
}
