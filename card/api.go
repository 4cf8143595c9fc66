package card

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/alovak/namecard/internal/vcard"
	"github.com/alovak/namecard/internal/view"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// API is the HTTP surface of the card service
type API struct {
	svc      *Service
	renderer *view.Renderer
	logger   *slog.Logger
}

func NewAPI(svc *Service, renderer *view.Renderer, logger *slog.Logger) *API {
	return &API{
		svc:      svc,
		renderer: renderer,
		logger:   logger,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Get("/{handle}/contact.vcf", a.downloadContact)
	r.Get("/", a.showCard)
	r.Get("/*", a.showCard)
}

func (a *API) showCard(w http.ResponseWriter, r *http.Request) {
	a.writePage(w, a.svc.Page(r.Context(), r.URL.Path))
}

// downloadContact serves the card as a vCard attachment. Failures render the
// same panels as the card page.
func (a *API) downloadContact(w http.ResponseWriter, r *http.Request) {
	card, err := a.svc.Contact(r.Context(), r.URL.Path)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			a.writePage(w, view.NotFound())
		case errors.Is(err, ErrConfiguration):
			a.writePage(w, view.Error(http.StatusServiceUnavailable, a.svc.cfg.setupMessage()))
		default:
			a.writePage(w, view.Error(http.StatusBadGateway, LoadFailedMessage))
		}
		return
	}

	body := vcard.Build(card)
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": vcard.Filename(card.Name),
	})

	w.Header().Set("Content-Type", vcard.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (a *API) writePage(w http.ResponseWriter, s view.State) {
	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, s); err != nil {
		a.logger.Error("rendering page", slog.String("state", s.Kind.String()), slog.Any("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", view.ContentType)
	w.WriteHeader(s.Status)
	w.Write(buf.Bytes())
}
