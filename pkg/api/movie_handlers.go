package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/middleware"
	"github.com/cinevault/cinevault/pkg/movies"
	"github.com/cinevault/cinevault/pkg/observability"
	"github.com/cinevault/cinevault/pkg/validation"
)

// MovieHandlers serves the /api/movies routes. Reads are public; writes
// require authentication.
type MovieHandlers struct {
	service   MovieService
	validator *validation.Validator
	authMW    *middleware.AuthMiddleware
	logger    *observability.Logger
}

// RegisterRoutes mounts the movie routes on the router.
func (h *MovieHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/movies", h.list).Methods("GET")
	router.HandleFunc("/api/movies/{id}", h.get).Methods("GET")

	protect := h.authMW.Handler
	router.Handle("/api/movies", protect(http.HandlerFunc(h.create))).Methods("POST")
	router.Handle("/api/movies/{id}", protect(http.HandlerFunc(h.update))).Methods("PUT")
	router.Handle("/api/movies/{id}", protect(http.HandlerFunc(h.delete))).Methods("DELETE")
}

func (h *MovieHandlers) validatedBody(w http.ResponseWriter, r *http.Request, schema string, dest interface{}) bool {
	body, err := httputil.ReadBody(r)
	if err != nil {
		httputil.WriteBadRequest(w, "failed to read request body")
		return false
	}
	if err := h.validator.Validate(schema, body); err != nil {
		httputil.WriteError(w, err)
		return false
	}
	if err := httputil.ParseJSONBytes(body, dest); err != nil {
		httputil.WriteBadRequest(w, "request body must be valid JSON")
		return false
	}
	return true
}

// list handles GET /api/movies
func (h *MovieHandlers) list(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), filters)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

// get handles GET /api/movies/{id}
func (h *MovieHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathString(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	movie, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, movie)
}

// create handles POST /api/movies
func (h *MovieHandlers) create(w http.ResponseWriter, r *http.Request) {
	var input movies.CreateInput
	if !h.validatedBody(w, r, validation.SchemaMovieCreate, &input) {
		return
	}

	claims := middleware.GetClaims(r)
	movie, err := h.service.Create(r.Context(), input, claims.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.FromContext(r.Context()).WithField("movie_id", movie.ID).Info("movie created")
	httputil.WriteCreatedMessage(w, "movie created successfully", movie)
}

// update handles PUT /api/movies/{id}
func (h *MovieHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathString(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	var input movies.UpdateInput
	if !h.validatedBody(w, r, validation.SchemaMovieUpdate, &input) {
		return
	}

	claims := middleware.GetClaims(r)
	movie, err := h.service.Update(r.Context(), id, input, claims.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessMessage(w, "movie updated successfully", movie)
}

// delete handles DELETE /api/movies/{id}
func (h *MovieHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathString(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	claims := middleware.GetClaims(r)
	if err := h.service.Delete(r.Context(), id, claims.UserID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessMessage(w, "movie deleted successfully", nil)
}

// parseFilters builds the list filters from query parameters.
func parseFilters(r *http.Request) (movies.Filters, error) {
	q := r.URL.Query()
	filters := movies.Filters{
		Title:    q.Get("title"),
		Genre:    q.Get("genre"),
		Director: q.Get("director"),
	}

	var err error
	if filters.MinDuration, err = httputil.QueryIntPtr(r, "minDuration"); err != nil {
		return filters, err
	}
	if filters.MaxDuration, err = httputil.QueryIntPtr(r, "maxDuration"); err != nil {
		return filters, err
	}
	if filters.MinRating, err = httputil.QueryFloat(r, "minRating"); err != nil {
		return filters, err
	}
	if filters.MaxRating, err = httputil.QueryFloat(r, "maxRating"); err != nil {
		return filters, err
	}
	if filters.StartDate, err = httputil.QueryTime(r, "startDate"); err != nil {
		return filters, err
	}
	if filters.EndDate, err = httputil.QueryTime(r, "endDate"); err != nil {
		return filters, err
	}
	if filters.Page, err = httputil.QueryInt(r, "page", 1); err != nil {
		return filters, err
	}
	if filters.Limit, err = httputil.QueryInt(r, "limit", movies.DefaultLimit); err != nil {
		return filters, err
	}

	return filters, nil
}
