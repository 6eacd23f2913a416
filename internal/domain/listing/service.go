package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/listing-insights/internal/domain/geo"
	apperrors "github.com/yanqian/listing-insights/pkg/errors"
)

// Config holds runtime knobs for the listing domain.
type Config struct {
	DefaultAPIURL string
	// AllowedAPIHosts restricts the api_url a visitor may submit. Empty allows any host.
	AllowedAPIHosts []string
	EnumBaseURL     string
	EnumCacheTTL    time.Duration
	// EnumTimeout bounds each enum fetch. Zero or negative uses defaultEnumTimeout.
	EnumTimeout    time.Duration
	Neighbourhoods []geo.Neighbourhood
}

// Options are the choices offered by the form's select inputs.
type Options struct {
	RoomTypes      []string `json:"roomTypes"`
	ResponseTimes  []string `json:"responseTimes"`
	PropertyTypes  []string `json:"propertyTypes"`
	Neighbourhoods []string `json:"neighbourhoods"`
}

// Service runs the listing form workflow.
type Service interface {
	NewForm() *Form
	Submit(ctx context.Context, form *Form) Outcome
	Locate(form *Form, p geo.Point) (geo.Neighbourhood, error)
	Resolve(p geo.Point) (geo.Neighbourhood, error)
	Options(ctx context.Context) Options
}

const (
	msgValidationFailed = "Validation failed. Please check your inputs."
	msgSuccess          = "Prediction successful!"
	msgHostNotAllowed   = "This API host is not allowed."

	defaultEnumTimeout = 2 * time.Second
)

type service struct {
	cfg    Config
	client PredictionClient
	enums  EnumClient
	store  EnumStore
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the listing domain.
func NewService(cfg Config, client PredictionClient, enums EnumClient, store EnumStore, logger *slog.Logger) Service {
	if len(cfg.Neighbourhoods) == 0 {
		cfg.Neighbourhoods = geo.RioNeighbourhoods
	}
	if cfg.EnumTimeout <= 0 {
		cfg.EnumTimeout = defaultEnumTimeout
	}
	return &service{
		cfg:    cfg,
		client: client,
		enums:  enums,
		store:  store,
		logger: logger.With("component", "listing.service"),
		now:    time.Now,
	}
}

func (s *service) NewForm() *Form {
	form := NewForm(DefaultValues(s.cfg.DefaultAPIURL))
	form.SetLocation(s.cfg.Neighbourhoods, geo.RioCenter)
	return form
}

// Submit validates the form and calls the prediction service at most once.
// The form is always back to idle when Submit returns.
func (s *service) Submit(ctx context.Context, form *Form) Outcome {
	if err := form.Begin(); err != nil {
		return Outcome{Code: apperrors.CodeOf(err), Message: "A prediction is already in progress."}
	}
	outcome := s.run(ctx, form.Values())
	form.Settle(outcome)
	return outcome
}

func (s *service) run(ctx context.Context, values FormValues) Outcome {
	input, fieldErrs := Validate(values)
	if fieldErrs != nil {
		s.logger.Info("listing form rejected", "fields", fieldErrs.Fields())
		return Outcome{
			Code:    apperrors.CodeInvalidInput,
			Message: msgValidationFailed,
			Errors:  fieldErrs,
		}
	}

	apiURL := strings.TrimRight(strings.TrimSpace(input.APIURL), "/")
	if !apiHostAllowed(apiURL, s.cfg.AllowedAPIHosts) {
		s.logger.Warn("api_url host rejected", "api_url", apiURL)
		return Outcome{
			Code:    apperrors.CodeInvalidInput,
			Message: msgValidationFailed,
			Errors:  FieldErrors{FieldAPIURL: {msgHostNotAllowed}},
		}
	}
	start := s.now()
	resp, err := s.client.Predict(ctx, apiURL, ToPayload(input))
	latency := s.now().Sub(start)
	if err != nil {
		outcome := outcomeForError(input.APIURL, err)
		s.logger.Warn("prediction failed", "code", outcome.Code, "api_url", apiURL, "latency_ms", latency.Milliseconds(), "error", err)
		return outcome
	}

	s.logger.Info("prediction settled", "class", resp.PredictedClass, "confidence", resp.Confidence, "latency_ms", latency.Milliseconds())
	return Outcome{Success: true, Message: msgSuccess, Result: &resp}
}

func outcomeForError(apiURL string, err error) Outcome {
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		return Outcome{
			Code:    apperrors.CodeUpstreamNetwork,
			Message: fmt.Sprintf("A network error occurred: %v", err),
		}
	}
	switch upstream.Kind {
	case UpstreamValidation:
		detail := upstream.Detail
		if detail == "" {
			detail = "Unknown validation issue."
		}
		return Outcome{
			Code:    apperrors.CodeUpstreamValidation,
			Message: "API Validation Error: " + detail,
			Errors:  FieldErrors{FormErrorKey: {detail}},
		}
	case UpstreamStatus:
		return Outcome{Code: apperrors.CodeUpstreamError, Message: upstream.Detail}
	case UpstreamUnreachable:
		return Outcome{
			Code:    apperrors.CodeUpstreamUnreachable,
			Message: "Could not connect to the prediction service. Please ensure the API server is running on " + apiURL,
		}
	case UpstreamMalformed:
		return Outcome{
			Code:    apperrors.CodeUpstreamMalformed,
			Message: "The prediction service returned an unexpected response.",
		}
	default:
		cause := upstream.Err
		if cause == nil {
			cause = upstream
		}
		return Outcome{
			Code:    apperrors.CodeUpstreamNetwork,
			Message: fmt.Sprintf("A network error occurred: %v", cause),
		}
	}
}

func (s *service) Locate(form *Form, p geo.Point) (geo.Neighbourhood, error) {
	if err := checkPoint(p); err != nil {
		return geo.Neighbourhood{}, err
	}
	n, ok := form.SetLocation(s.cfg.Neighbourhoods, p)
	if !ok {
		return geo.Neighbourhood{}, apperrors.Wrap(apperrors.CodeInvalidInput, "no neighbourhoods configured", nil)
	}
	return n, nil
}

func (s *service) Resolve(p geo.Point) (geo.Neighbourhood, error) {
	if err := checkPoint(p); err != nil {
		return geo.Neighbourhood{}, err
	}
	n, ok := geo.Nearest(s.cfg.Neighbourhoods, p.Rounded())
	if !ok {
		return geo.Neighbourhood{}, apperrors.Wrap(apperrors.CodeInvalidInput, "no neighbourhoods configured", nil)
	}
	return n, nil
}

func checkPoint(p geo.Point) error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid latitude", nil)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid longitude", nil)
	}
	return nil
}

func (s *service) Options(ctx context.Context) Options {
	return Options{
		RoomTypes:      s.enumValues(ctx, EnumRoomType),
		ResponseTimes:  s.enumValues(ctx, EnumHostResponseTime),
		PropertyTypes:  append([]string(nil), PropertyTypes...),
		Neighbourhoods: geo.Names(s.cfg.Neighbourhoods),
	}
}

// enumValues serves kind from the cache, then the service, then the built-in
// list. Built-in fallbacks are never cached so a recovered service is picked up.
func (s *service) enumValues(ctx context.Context, kind EnumKind) []string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.EnumBaseURL), "/")
	if base == "" || s.enums == nil {
		return DefaultEnum(kind)
	}
	key := enumCacheKey(base, kind)
	if s.store != nil {
		cached, ok, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Warn("enum cache lookup failed", "kind", kind, "error", err)
		} else if ok && len(cached) > 0 {
			return cached
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.EnumTimeout)
	values, err := s.enums.Enums(fetchCtx, base, kind)
	cancel()
	if err != nil {
		s.logger.Warn("enum fetch failed, using defaults", "kind", kind, "error", err)
		return DefaultEnum(kind)
	}
	if len(values) == 0 {
		s.logger.Warn("enum fetch returned no values, using defaults", "kind", kind)
		return DefaultEnum(kind)
	}
	if s.store != nil {
		if err := s.store.Save(ctx, key, values, s.cfg.EnumCacheTTL); err != nil {
			s.logger.Warn("enum cache save failed", "kind", kind, "error", err)
		}
	}
	return values
}

// apiHostAllowed reports whether rawURL's host:port or bare host is listed.
func apiHostAllowed(rawURL string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	for _, host := range allowed {
		host = strings.ToLower(strings.TrimSpace(host))
		if host != "" && (host == strings.ToLower(u.Host) || host == strings.ToLower(u.Hostname())) {
			return true
		}
	}
	return false
}

func enumCacheKey(base string, kind EnumKind) string {
	return base + "|" + string(kind)
}
