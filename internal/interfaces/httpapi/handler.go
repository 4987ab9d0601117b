package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matchday-dev/matchday/internal/platform/logging"
	"github.com/matchday-dev/matchday/internal/usecase"
)

type Handler struct {
	homePage        *usecase.HomePageService
	competitionPage *usecase.CompetitionPageService
	matchPage       *usecase.MatchPageService
	teamPage        *usecase.TeamPageService
	resources       *usecase.ResourceService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	homePage *usecase.HomePageService,
	competitionPage *usecase.CompetitionPageService,
	matchPage *usecase.MatchPageService,
	teamPage *usecase.TeamPageService,
	resources *usecase.ResourceService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		homePage:        homePage,
		competitionPage: competitionPage,
		matchPage:       matchPage,
		teamPage:        teamPage,
		resources:       resources,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateQuery(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateQuery")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func parseOptionalInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	out, err := strconv.Atoi(raw)
	if err != nil || out <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return out, nil
}

func parseBoolFlag(values url.Values, name string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// pageOptions maps the manual retry affordance: ?refresh=1 forces the load
// past the freshness window.
func pageOptions(r *http.Request) usecase.PageOptions {
	return usecase.PageOptions{ForceRefresh: parseBoolFlag(r.URL.Query(), "refresh")}
}
