package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "ossreport/internal/errors"
	"ossreport/internal/infrastructure"
)

func TestRequestID(t *testing.T) {
	var seen, chiSeen, traceSeen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetReqID(r.Context())
		chiSeen = chimiddleware.GetReqID(r.Context())
		traceSeen = infrastructure.GetTraceID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, chiSeen)
		assert.Equal(t, seen, traceSeen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("from client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	})
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	eh := apierrors.NewErrorHandler(nil, false)

	tests := []struct {
		name  string
		rps   float64
		burst int
		want  []int
	}{
		{"burst then limited", 0.001, 2, []int{204, 204, 429}},
		{"disabled", 0, 0, []int{204, 204, 204, 204}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRateLimiter(tt.rps, tt.burst, eh, nil).Handler(ok)
			for i, want := range tt.want {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				assert.Equal(t, want, rec.Code, "request %d", i)
			}
		})
	}
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	h := CORS([]string{"https://dashboard.example"})(SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "https://dashboard.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

type reportQuery struct {
	Year    int    `json:"year" validate:"required,gte=2000"`
	Period  string `json:"period" validate:"required,period"`
	Dataset string `json:"dataset" validate:"omitempty,dataset"`
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		in     reportQuery
		fields []string
	}{
		{"valid", reportQuery{Year: 2025, Period: "TW II", Dataset: "nib"}, nil},
		{"valid semester", reportQuery{Year: 2025, Period: "Semester 1"}, nil},
		{"missing both", reportQuery{}, []string{"year", "period"}},
		{"bad period", reportQuery{Year: 2025, Period: "Q9"}, []string{"period"}},
		{"bad dataset", reportQuery{Year: 2025, Period: "FY", Dataset: "ticker"}, []string{"dataset"}},
		{"year too small", reportQuery{Year: 1990, Period: "FY"}, []string{"year"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.in)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			details, ok := apiErr.Details.(apierrors.ValidationErrors)
			require.True(t, ok)
			var got []string
			for _, e := range details.Errors {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestFormatValidationMessages(t *testing.T) {
	v := NewValidator()
	err := v.ValidateStruct(reportQuery{Year: 2025, Period: "x"})
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	details := apiErr.Details.(apierrors.ValidationErrors)
	assert.Equal(t, "period must be a period such as TW I, Semester II or Tahunan", details.Errors[0].Message)
}
