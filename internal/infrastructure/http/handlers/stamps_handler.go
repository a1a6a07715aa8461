package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/application/stamps"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
	domerrors "github.com/chima-angwe/location-stamper-backend/internal/domain/errors"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/middleware"
)

// StampsHandler handles /api/stamps. Every route requires AuthValidator.
type StampsHandler struct {
	create   *stamps.Create
	get      *stamps.Get
	list     *stamps.List
	update   *stamps.Update
	remove   *stamps.Delete
	validate *validator.Validate
	log      zerolog.Logger
}

func NewStampsHandler(create *stamps.Create, get *stamps.Get, list *stamps.List, update *stamps.Update, remove *stamps.Delete, log zerolog.Logger) *StampsHandler {
	return &StampsHandler{
		create:   create,
		get:      get,
		list:     list,
		update:   update,
		remove:   remove,
		validate: validator.New(),
		log:      log,
	}
}

// stampPayload is the JSON shape for a stamp.
type stampPayload struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Address     string         `json:"address,omitempty"`
	Category    string         `json:"category"`
	Photos      []domain.Photo `json:"photos"`
	Notes       string         `json:"notes,omitempty"`
	VisitedDate time.Time      `json:"visitedDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toStampPayload(s *domain.Stamp) stampPayload {
	photos := s.Photos
	if photos == nil {
		photos = []domain.Photo{}
	}
	return stampPayload{
		ID:          s.ID.String(),
		UserID:      s.OwnerID.String(),
		Title:       s.Title,
		Description: s.Description,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Address:     s.Address,
		Category:    s.Category.String(),
		Photos:      photos,
		Notes:       s.Notes,
		VisitedDate: s.VisitedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// requireIdentity pulls the authenticated caller from context, answering 401
// itself when the middleware did not run.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return domain.UserID{}, false
	}
	id, err := uuid.Parse(identity.UserID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return domain.UserID{}, false
	}
	return domain.NewUserID(id), true
}

func stampIDParam(w http.ResponseWriter, r *http.Request) (domain.StampID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid stamp ID")
		return domain.StampID{}, false
	}
	return domain.NewStampID(id), true
}

// parseListInput validates page/limit/category/sortBy/order before anything
// touches the store. Unknown or out-of-range values are a 400, not a silent
// default.
func parseListInput(r *http.Request, owner domain.UserID) (stamps.ListInput, error) {
	input := stamps.ListInput{
		OwnerID: owner,
		Page:    stamps.DefaultPage,
		Limit:   stamps.DefaultLimit,
		SortBy:  ports.SortByCreatedAt,
		Order:   ports.OrderDesc,
	}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return input, errors.New("Page must be a positive integer")
		}
		input.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > stamps.MaxLimit {
			return input, errors.New("Limit must be between 1 and 100")
		}
		input.Limit = n
	}
	if v := q.Get("category"); v != "" {
		category, ok := domain.ParseCategory(v)
		if !ok {
			return input, errors.New("Invalid category")
		}
		input.Category = &category
	}
	if v := q.Get("sortBy"); v != "" {
		switch ports.SortKey(v) {
		case ports.SortByCreatedAt, ports.SortByVisitedDate, ports.SortByTitle:
			input.SortBy = ports.SortKey(v)
		default:
			return input, errors.New("Invalid sort field")
		}
	}
	if v := q.Get("order"); v != "" {
		switch ports.SortOrder(v) {
		case ports.OrderAsc, ports.OrderDesc:
			input.Order = ports.SortOrder(v)
		default:
			return input, errors.New("Order must be asc or desc")
		}
	}
	return input, nil
}

func (h *StampsHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	input, err := parseListInput(r, owner)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.list.Execute(r.Context(), input)
	if err != nil {
		h.log.Error().Err(err).Msg("list stamps failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	data := make([]stampPayload, 0, len(result.Items))
	for _, s := range result.Items {
		data = append(data, toStampPayload(s))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"count":       len(data),
		"total":       result.Total,
		"page":        result.Page,
		"limit":       result.Limit,
		"totalPages":  result.TotalPages,
		"hasNextPage": result.HasNextPage,
		"hasPrevPage": result.HasPrevPage,
		"data":        data,
	})
}

type photoPayload struct {
	URL      string `json:"url" validate:"required,max=2048"`
	PublicID string `json:"publicId" validate:"required,max=512"`
}

func toDomainPhotos(in []photoPayload) []domain.Photo {
	out := make([]domain.Photo, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Photo{URL: p.URL, PublicID: p.PublicID})
	}
	return out
}

func (h *StampsHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	// A client-supplied userId is simply not part of the request shape;
	// ownership always comes from the token.
	var body struct {
		Title       string         `json:"title" validate:"required,min=1,max=100"`
		Description string         `json:"description" validate:"omitempty,max=500"`
		Latitude    *float64       `json:"latitude" validate:"required,gte=-90,lte=90"`
		Longitude   *float64       `json:"longitude" validate:"required,gte=-180,lte=180"`
		Address     string         `json:"address" validate:"omitempty,max=255"`
		Category    string         `json:"category" validate:"omitempty,oneof=work home travel dining hiking other"`
		Photos      []photoPayload `json:"photos" validate:"omitempty,max=5,dive"`
		Notes       string         `json:"notes" validate:"omitempty,max=1000"`
		VisitedDate *time.Time     `json:"visitedDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	stamp, err := h.create.Execute(r.Context(), stamps.CreateInput{
		OwnerID:     owner,
		Title:       body.Title,
		Description: body.Description,
		Latitude:    *body.Latitude,
		Longitude:   *body.Longitude,
		Address:     body.Address,
		Category:    domain.Category(body.Category),
		Photos:      toDomainPhotos(body.Photos),
		Notes:       body.Notes,
		VisitedAt:   body.VisitedDate,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create stamp failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    toStampPayload(stamp),
	})
}

func (h *StampsHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	stampID, ok := stampIDParam(w, r)
	if !ok {
		return
	}
	stamp, err := h.get.Execute(r.Context(), stampID, owner)
	if err != nil {
		h.writeStampErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    toStampPayload(stamp),
	})
}

func (h *StampsHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	stampID, ok := stampIDParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       *string         `json:"title" validate:"omitempty,min=1,max=100"`
		Description *string         `json:"description" validate:"omitempty,max=500"`
		Latitude    *float64        `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
		Longitude   *float64        `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
		Address     *string         `json:"address" validate:"omitempty,max=255"`
		Category    *string         `json:"category" validate:"omitempty,oneof=work home travel dining hiking other"`
		Photos      *[]photoPayload `json:"photos" validate:"omitempty,max=5,dive"`
		Notes       *string         `json:"notes" validate:"omitempty,max=1000"`
		VisitedDate *time.Time      `json:"visitedDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	patch := stamps.UpdateInput{
		Title:       body.Title,
		Description: body.Description,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		Address:     body.Address,
		Notes:       body.Notes,
		VisitedAt:   body.VisitedDate,
	}
	if body.Category != nil {
		category := domain.Category(*body.Category)
		patch.Category = &category
	}
	if body.Photos != nil {
		photos := toDomainPhotos(*body.Photos)
		patch.Photos = &photos
	}
	stamp, err := h.update.Execute(r.Context(), stampID, owner, patch)
	if err != nil {
		h.writeStampErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    toStampPayload(stamp),
	})
}

func (h *StampsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	stampID, ok := stampIDParam(w, r)
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), stampID, owner); err != nil {
		h.writeStampErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]interface{}{},
	})
}

// writeStampErr maps the single-record guard errors. Ownership mismatch is a
// 401 here, matching the rest of the API's convention.
func (h *StampsHandler) writeStampErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrStampNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domerrors.ErrNotOwner):
		writeErr(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Error().Err(err).Msg("stamp operation failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
