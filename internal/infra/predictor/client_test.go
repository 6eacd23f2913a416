package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/listing-insights/internal/domain/listing"
)

const okBody = `{
  "status": "ok",
  "resultado": {
    "classe_prevista": "luxo",
    "confianca": "64.0%",
    "probabilidades": {"baixo": "6.0", "medio": "30.0", "luxo": "64.0"},
    "explicacao_LIME": {"cobertura_pct": 90, "itens": [
      {"feature": "bedrooms", "rotulo": "Quartos", "grupo": "Tamanho", "valor": 3, "impacto": 0.2, "direcao": "favorece"}
    ]}
  }
}`

func TestPredictPostsPayloadAndReshapes(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	client := NewClient(0)
	resp, err := client.Predict(context.Background(), srv.URL+"/", listing.APIPayload{
		Accommodates:      2,
		HostResponseRate:  0.9,
		HostHasProfilePic: true,
	})
	require.NoError(t, err)
	require.Equal(t, listing.ClassLuxury, resp.PredictedClass)
	require.Equal(t, "64.0%", resp.Confidence)
	require.InDelta(t, 0.64, resp.Probabilities[listing.ClassLuxury], 1e-9)
	require.InDelta(t, 0.06, resp.Probabilities[listing.ClassLow], 1e-9)
	require.NotNil(t, resp.Explanation)
	require.Len(t, resp.Explanation.Items, 1)

	require.Equal(t, 2.0, got["accommodates"])
	require.Equal(t, 0.9, got["host_response_rate"])
	require.Equal(t, true, got["host_has_profile_pic"])
	require.NotContains(t, got, "api_url")
}

func TestPredictMapsErrorResponses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   listing.UpstreamKind
		detail string
	}{
		{
			name:   "validation first issue",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","bedrooms"],"msg":"too low","type":"value_error"},{"loc":["body","beds"],"msg":"x"}]}`,
			kind:   listing.UpstreamValidation,
			detail: "body.bedrooms - too low",
		},
		{
			name:   "validation numeric loc",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body",0,"beds"],"msg":"bad"}]}`,
			kind:   listing.UpstreamValidation,
			detail: "body.0.beds - bad",
		},
		{
			name:   "validation empty detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[]}`,
			kind:   listing.UpstreamValidation,
			detail: "",
		},
		{
			name:   "validation body without detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"error":"bad"}`,
			kind:   listing.UpstreamStatus,
			detail: `API Error: {"error":"bad"}`,
		},
		{
			name:   "validation null detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":null,"error":"bad"}`,
			kind:   listing.UpstreamStatus,
			detail: `API Error: {"detail":null,"error":"bad"}`,
		},
		{
			name:   "validation string detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":"payload rejected"}`,
			kind:   listing.UpstreamStatus,
			detail: "API Error: payload rejected",
		},
		{
			name:   "validation unparseable",
			status: http.StatusUnprocessableEntity,
			body:   `oops`,
			kind:   listing.UpstreamStatus,
			detail: "An API error occurred: 422 Unprocessable Entity",
		},
		{
			name:   "string detail",
			status: http.StatusBadRequest,
			body:   `{"detail":"model not loaded"}`,
			kind:   listing.UpstreamStatus,
			detail: "API Error: model not loaded",
		},
		{
			name:   "json body",
			status: http.StatusServiceUnavailable,
			body:   `{"error": "warming up"}`,
			kind:   listing.UpstreamStatus,
			detail: `API Error: {"error":"warming up"}`,
		},
		{
			name:   "plain text",
			status: http.StatusInternalServerError,
			body:   `Internal Server Error`,
			kind:   listing.UpstreamStatus,
			detail: "An API error occurred: 500 Internal Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(0).Predict(context.Background(), srv.URL, listing.APIPayload{})
			var upstream *listing.UpstreamError
			require.True(t, errors.As(err, &upstream))
			require.Equal(t, tc.kind, upstream.Kind)
			require.Equal(t, tc.status, upstream.StatusCode)
			require.Equal(t, tc.detail, upstream.Detail)
		})
	}
}

func TestPredictMalformedSuccessBody(t *testing.T) {
	for _, body := range []string{`not json`, `{"status":"ok","resultado":{}}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := NewClient(0).Predict(context.Background(), srv.URL, listing.APIPayload{})
		srv.Close()

		var upstream *listing.UpstreamError
		require.True(t, errors.As(err, &upstream), body)
		require.Equal(t, listing.UpstreamMalformed, upstream.Kind)
	}
}

func TestPredictConnectionRefusedIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(time.Second).Predict(context.Background(), url, listing.APIPayload{})
	var upstream *listing.UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, listing.UpstreamUnreachable, upstream.Kind)
}

func TestPredictCanceledContextIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(0).Predict(ctx, srv.URL, listing.APIPayload{})
	var upstream *listing.UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, listing.UpstreamNetwork, upstream.Kind)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEnumsFetchesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/enums/room_type":
			_, _ = w.Write([]byte(`["Entire home/apt","Private room"]`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(0)
	values, err := client.Enums(context.Background(), srv.URL+"/", listing.EnumRoomType)
	require.NoError(t, err)
	require.Equal(t, []string{"Entire home/apt", "Private room"}, values)

	_, err = client.Enums(context.Background(), srv.URL, listing.EnumHostResponseTime)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=404")
}

func TestEnumsRejectsNonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"values":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(0).Enums(context.Background(), srv.URL, listing.EnumRoomType)
	require.Error(t, err)
}

func TestEnumsStopsAtContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewClient(0).Enums(ctx, srv.URL, listing.EnumRoomType)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 2*time.Second)
}
