package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/markup"
	"github.com/vanshika/retailrec/internal/metadata"
	"github.com/vanshika/retailrec/internal/recommend"
	"github.com/vanshika/retailrec/internal/service"
)

// Retriever is the recommendation contract used by the handlers.
type Retriever interface {
	Retrieve(ctx context.Context, req recommend.Request) (domain.Recommendation, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger      *slog.Logger
	catalog     metadata.Catalog
	retriever   Retriever
	showcase    *service.ShowcaseService
	defaultMode recommend.Mode
}

// NewAPIHandlers constructs an APIHandlers instance. defaultMode applies when
// a request carries no source parameter.
func NewAPIHandlers(logger *slog.Logger, catalog metadata.Catalog, retriever Retriever, showcase *service.ShowcaseService, defaultMode recommend.Mode) *APIHandlers {
	return &APIHandlers{
		logger:      logger,
		catalog:     catalog,
		retriever:   retriever,
		showcase:    showcase,
		defaultMode: defaultMode,
	}
}

type userResponse struct {
	UserID     int64  `json:"userId"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	GenderCode string `json:"genderCode"`
}

type productResponse struct {
	ItemID      int64           `json:"itemId"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Price       decimal.NullDecimal `json:"price"`
	Description string          `json:"description"`
}

type recommendationResponse struct {
	UserID int64   `json:"userId"`
	Source string  `json:"source"`
	Items  []int64 `json:"items"`
	Reason string  `json:"reason,omitempty"`
}

type showcaseResponse struct {
	User   userResponse      `json:"user"`
	Source string            `json:"source"`
	Items  []productResponse `json:"items"`
	Reason string            `json:"reason,omitempty"`
}

func (h *APIHandlers) getUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.catalog.User(r.Context(), userID)
	if err != nil {
		h.writeLookupError(w, err, "user", userID)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *APIHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		h.writeLookupError(w, err, "product", productID)
		return
	}
	if strip, _ := strconv.ParseBool(r.URL.Query().Get("strip")); strip {
		product.Description = markup.StripTags(product.Description)
	}
	respondJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *APIHandlers) getRecommendations(w http.ResponseWriter, r *http.Request) {
	req, ok := h.recommendRequest(w, r)
	if !ok {
		return
	}

	rec, err := h.retriever.Retrieve(r.Context(), req)
	switch {
	case err == nil:
		items := make([]int64, len(rec.Items))
		for i, id := range rec.Items {
			items[i] = int64(id)
		}
		respondJSON(w, http.StatusOK, recommendationResponse{UserID: rec.UserID, Source: rec.Source, Items: items})
	case errors.Is(err, recommend.ErrEmpty):
		respondJSON(w, http.StatusOK, recommendationResponse{
			UserID: req.UserID,
			Source: req.Mode.String(),
			Items:  []int64{},
			Reason: recommend.ErrEmpty.Error(),
		})
	case errors.Is(err, recommend.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "recommendation source not configured")
	default:
		h.logger.Warn("recommendation retrieval failed", "error", err, "userId", req.UserID, "source", req.Mode.String())
		msg := "recommendation source failed"
		if kind := recommend.KindOf(err); kind != nil {
			msg = kind.Error()
		}
		writeError(w, http.StatusBadGateway, msg)
	}
}

func (h *APIHandlers) getShowcase(w http.ResponseWriter, r *http.Request) {
	req, ok := h.recommendRequest(w, r)
	if !ok {
		return
	}

	show, err := h.showcase.Build(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
		return
	case errors.Is(err, recommend.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "recommendation source not configured")
		return
	default:
		h.logger.Error("failed to build showcase", "error", err, "userId", req.UserID)
		writeError(w, http.StatusInternalServerError, "failed to build showcase")
		return
	}

	items := make([]productResponse, len(show.Items))
	for i, product := range show.Items {
		items[i] = toProductResponse(product)
	}
	respondJSON(w, http.StatusOK, showcaseResponse{
		User:   toUserResponse(show.User),
		Source: show.Source,
		Items:  items,
		Reason: show.Reason,
	})
}

func (h *APIHandlers) recommendRequest(w http.ResponseWriter, r *http.Request) (recommend.Request, bool) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return recommend.Request{}, false
	}

	mode := h.defaultMode
	if source := r.URL.Query().Get("source"); source != "" {
		parsed, err := recommend.ParseMode(source)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return recommend.Request{}, false
		}
		mode = parsed
	}

	return recommend.Request{
		UserID: userID,
		Mode:   mode,
		APIKey: r.Header.Get(recommend.APIKeyHeader),
	}, true
}

func (h *APIHandlers) writeLookupError(w http.ResponseWriter, err error, entity string, id int64) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, entity+" not found")
		return
	}
	h.logger.Error("catalog lookup failed", "error", err, "entity", entity, "id", id)
	writeError(w, http.StatusInternalServerError, "failed to fetch "+entity)
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+strings.TrimSuffix(param, "ID")+" id")
		return 0, false
	}
	return id, true
}

func toUserResponse(user domain.UserProfile) userResponse {
	return userResponse{
		UserID:     user.ID,
		Age:        user.Age,
		Gender:     user.GenderLabel,
		GenderCode: user.GenderCode,
	}
}

func toProductResponse(product domain.Product) productResponse {
	return productResponse{
		ItemID:      product.ID,
		Category:    product.Category,
		Subcategory: product.Subcategory,
		Price:       product.Price,
		Description: product.Description,
	}
}
