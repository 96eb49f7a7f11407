package handlers

import (
	"time"

	"prema-telhados/go_backend/internal/app/config"
	"prema-telhados/go_backend/internal/app/workspace"
	"prema-telhados/go_backend/internal/domain/auth"
	"prema-telhados/go_backend/internal/domain/catalog"
	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/domain/quote/pdf"
)

type Handlers struct {
	Cfg      config.Config
	Catalog  *catalog.Loader
	Accounts *auth.Directory
	Sessions *auth.Sessions
	Drafts   *workspace.Store
	PDF      pdf.Generator
	Archive  quote.Archive
	// Company is the header used by quotes built outside a draft.
	Company quote.Company
	Now     func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
