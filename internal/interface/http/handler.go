package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/listing-insights/internal/domain/geo"
	"github.com/yanqian/listing-insights/internal/domain/listing"
	"github.com/yanqian/listing-insights/internal/domain/results"
	apperrors "github.com/yanqian/listing-insights/pkg/errors"
)

const (
	formTokenField  = "form_token"
	pageTemplate    = "index.tmpl"
	msgTokenExpired = "Your form session expired. Please submit again."
)

// Handler wires the HTTP transport to the listing service.
type Handler struct {
	svc    listing.Service
	tokens *FormTokens
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc listing.Service, tokens *FormTokens, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		tokens: tokens,
		logger: logger.With("component", "http.handler"),
	}
}

type notice struct {
	Success bool
	Message string
}

type pageView struct {
	Values        listing.FormValues
	Errors        listing.FieldErrors
	Options       listing.Options
	NumericFields []listing.FieldSpec
	FlagFields    []listing.FieldSpec
	Center        geo.Point
	Token         string
	Notice        *notice
	Result        *results.View
}

// Page renders a fresh form.
func (h *Handler) Page(c *gin.Context) {
	h.render(c, http.StatusOK, h.svc.NewForm(), nil)
}

// Predict handles the HTML form submission.
func (h *Handler) Predict(c *gin.Context) {
	form := h.svc.NewForm()
	form.Merge(postedValues(c))

	if err := h.tokens.Verify(c.PostForm(formTokenField)); err != nil {
		h.logger.Warn("form token rejected", "request_id", c.GetString(requestIDKey), "error", err)
		h.render(c, http.StatusForbidden, form, &notice{Message: msgTokenExpired})
		return
	}

	outcome := h.svc.Submit(c.Request.Context(), form)
	h.render(c, http.StatusOK, form, &notice{Success: outcome.Success, Message: outcome.Message})
}

// Locate handles a map click posted without script support.
func (h *Handler) Locate(c *gin.Context) {
	form := h.svc.NewForm()
	form.Merge(postedValues(c))

	p, err := parsePoint(c.PostForm(listing.FieldLatitude), c.PostForm(listing.FieldLongitude))
	if err == nil {
		_, err = h.svc.Locate(form, p)
	}
	if err != nil {
		h.render(c, http.StatusBadRequest, form, &notice{Message: errMessage(err)})
		return
	}
	h.render(c, http.StatusOK, form, nil)
}

// PredictJSON runs a submission from a JSON object of raw field values.
// Fields left out keep their form defaults.
func (h *Handler) PredictJSON(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	form := h.svc.NewForm()
	form.Merge(jsonValues(raw))
	outcome := h.svc.Submit(c.Request.Context(), form)
	c.JSON(statusForCode(outcome.Code), outcome)
}

type resolveResponse struct {
	Neighbourhood string  `json:"neighbourhood"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceKm    float64 `json:"distanceKm"`
}

// Resolve maps a coordinate to the nearest known neighbourhood.
func (h *Handler) Resolve(c *gin.Context) {
	p, err := parsePoint(c.Query("lat"), c.Query("lon"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	p = p.Rounded()
	n, err := h.svc.Resolve(p)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, resolveResponse{
		Neighbourhood: n.Name,
		Latitude:      p.Lat,
		Longitude:     p.Lon,
		DistanceKm:    geo.Haversine(p, n.Point),
	})
}

// Options lists the select choices.
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Options(c.Request.Context()))
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) render(c *gin.Context, status int, form *listing.Form, n *notice) {
	token, err := h.tokens.Issue()
	if err != nil {
		h.logger.Error("issue form token failed", "error", err)
	}
	view := pageView{
		Values:        form.Values(),
		Errors:        form.FieldErrors(),
		Options:       h.svc.Options(c.Request.Context()),
		NumericFields: listing.NumericFields,
		FlagFields:    listing.FlagFields,
		Center:        geo.RioCenter,
		Token:         token,
		Notice:        n,
	}
	if outcome := form.Outcome(); outcome != nil && outcome.Result != nil {
		built := results.Build(*outcome.Result)
		view.Result = &built
	}
	c.HTML(status, pageTemplate, view)
}

// postedValues keeps only the known form fields present in the request body.
func postedValues(c *gin.Context) listing.FormValues {
	out := listing.FormValues{}
	for field := range listing.DefaultValues("") {
		if v, ok := c.GetPostForm(field); ok {
			out[field] = v
		}
	}
	return out
}

func jsonValues(raw map[string]any) listing.FormValues {
	out := listing.FormValues{}
	for field := range listing.DefaultValues("") {
		v, ok := raw[field]
		if !ok || v == nil {
			continue
		}
		switch typed := v.(type) {
		case string:
			out[field] = typed
		case float64:
			out[field] = strconv.FormatFloat(typed, 'f', -1, 64)
		case bool:
			if typed {
				out[field] = listing.FlagTrue
			} else {
				out[field] = listing.FlagFalse
			}
		default:
			out[field] = fmt.Sprint(typed)
		}
	}
	return out
}

func parsePoint(rawLat, rawLon string) (geo.Point, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil {
		return geo.Point{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid latitude", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if err != nil {
		return geo.Point{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid longitude", err)
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
