package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
)

func newTestBaseHandler() BaseHandler {
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	return NewBaseHandler(logger)
}

func recordServiceError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler := newTestBaseHandler()
	handler.handleServiceError(c, err)
	return recorder
}

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Patient_Not_Found", services.ErrPatientNotFound, http.StatusNotFound},
		{"Duplicate_Patient", services.ErrPatientExists, http.StatusConflict},
		{"Already_Validated", services.ErrActionAlreadyValidated, http.StatusConflict},
		{"Type_Mismatch", services.ErrActionTypeMismatch, http.StatusBadRequest},
		{"Diagnosis_Limit", services.ErrDiagnosticLimitReached, http.StatusBadRequest},
		{"Oversized_Photo", services.ErrPhotoTooLarge, http.StatusBadRequest},
		{"Bad_Credentials", keycloak.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Provider_Down", keycloak.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"Unknown_Error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := recordServiceError(t, tc.err)
			if recorder.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, recorder.Code)
			}
		})
	}

	t.Run("Profession_Error_Names_The_Required_Profession", func(t *testing.T) {
		err := &services.SeanceProfessionError{
			SeanceType: models.SeanceDetartrage,
			Required:   models.ProfessionParodontaire,
			Actual:     models.ProfessionOrthodontaire,
		}
		recorder := recordServiceError(t, err)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", recorder.Code)
		}
		if body := recorder.Body.String(); !strings.Contains(body, "PARODONTAIRE") {
			t.Errorf("Expected the profession in the body, got %s", body)
		}
	})

	t.Run("Internal_Errors_Are_Not_Leaked", func(t *testing.T) {
		recorder := recordServiceError(t, errors.New("pq: connection refused"))
		if body := recorder.Body.String(); strings.Contains(body, "connection refused") {
			t.Errorf("Driver details must not reach the client: %s", body)
		}
	})
}

func TestParseListFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (filters struct {
		Limit, Offset     int
		SortBy, SortOrder string
	}) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		got := parseListFilters(c)
		filters.Limit = got.Limit
		filters.Offset = got.Offset
		filters.SortBy = got.SortBy
		filters.SortOrder = got.SortOrder
		return filters
	}

	t.Run("Defaults", func(t *testing.T) {
		filters := parse("")
		if filters.Limit != 20 || filters.Offset != 0 {
			t.Errorf("Expected page 1 of 20, got limit=%d offset=%d", filters.Limit, filters.Offset)
		}
	})

	t.Run("Page_And_Size", func(t *testing.T) {
		filters := parse("page=3&size=10&sort_by=date&sort_order=asc")
		if filters.Limit != 10 || filters.Offset != 20 {
			t.Errorf("Expected limit=10 offset=20, got limit=%d offset=%d", filters.Limit, filters.Offset)
		}
		if filters.SortBy != "date" || filters.SortOrder != "asc" {
			t.Errorf("Expected sort passthrough, got %s %s", filters.SortBy, filters.SortOrder)
		}
	})

	t.Run("Size_Is_Capped", func(t *testing.T) {
		filters := parse("size=500")
		if filters.Limit != 20 {
			t.Errorf("Oversized page sizes fall back to the default, got %d", filters.Limit)
		}
	})

	t.Run("Garbage_Is_Ignored", func(t *testing.T) {
		filters := parse("page=-1&size=abc")
		if filters.Limit != 20 || filters.Offset != 0 {
			t.Errorf("Expected defaults, got limit=%d offset=%d", filters.Limit, filters.Offset)
		}
	})
}
