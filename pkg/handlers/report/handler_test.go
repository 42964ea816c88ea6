package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/bp-atlas/pkg/models/api"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/models/store"
	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/de-tools/bp-atlas/pkg/services/plausibility"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb/readings"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockParser struct{ mock.Mock }

func (m *mockParser) Parse(ctx context.Context, src ingest.Source) (*domain.Report, error) {
	args := m.Called(ctx, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) AddReport(ctx context.Context, r *store.Report) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *mockStore) GetReport(ctx context.Context, id string) (*store.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Report), args.Error(1)
}

func (m *mockStore) ListReports(ctx context.Context) ([]store.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Report), args.Error(1)
}

func (m *mockStore) ListReadings(ctx context.Context, from, to time.Time) ([]store.Reading, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Reading), args.Error(1)
}

var _ readings.Store = (*mockStore)(nil)

func parsedReport() *domain.Report {
	return &domain.Report{
		Metadata: domain.ReportMetadata{
			MemberName:  "Jane Doe",
			Email:       domain.UnknownEmail,
			Month:       "February",
			Year:        "2024",
			Gender:      domain.Unknown,
			DateOfBirth: domain.Unknown,
			Height:      domain.Unknown,
			Weight:      domain.Unknown,
		},
		Readings: []domain.Reading{
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Time: "07:45", Systolic: 125, Diastolic: 82, HeartRate: 64, ReadingType: domain.ReadingTypeNormal},
			{Date: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), Time: "08:00", Systolic: 190, Diastolic: 100, HeartRate: 80, ReadingType: domain.ReadingTypeCuff},
		},
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestParseText(t *testing.T) {
	pages := []string{"header", "table"}

	tests := []struct {
		name           string
		body           string
		path           string
		setupMocks     func(*mockParser, *mockStore)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "parsed report with plausibility",
			body: `{"pages":["header","table"]}`,
			path: "/reports/text",
			setupMocks: func(p *mockParser, s *mockStore) {
				p.On("Parse", mock.Anything, ingest.Source{Pages: pages}).Return(parsedReport(), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				res := decode[api.Report](t, rec)
				assert.Empty(t, res.ID)
				assert.Equal(t, "Jane Doe", res.Metadata.MemberName)
				require.Len(t, res.Readings, 2)
				assert.Equal(t, "2024-02-01", res.Readings[0].Date)
				assert.Equal(t, "Hypertensive Crisis", res.Readings[1].Category)
				require.NotNil(t, res.Plausibility)
				assert.Equal(t, 1, res.Plausibility.CrisisCount)
			},
		},
		{
			name: "stored on request",
			body: `{"pages":["header","table"]}`,
			path: "/reports/text?store=true",
			setupMocks: func(p *mockParser, s *mockStore) {
				p.On("Parse", mock.Anything, ingest.Source{Pages: pages}).Return(parsedReport(), nil)
				s.On("AddReport", mock.Anything, mock.MatchedBy(func(r *store.Report) bool {
					return r.Source == "inline" && len(r.Readings) == 2
				})).Return("report-1", nil)
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				res := decode[api.Report](t, rec)
				assert.Equal(t, "report-1", res.ID)
			},
		},
		{
			name: "parse failure maps to 422",
			body: `{"pages":[]}`,
			path: "/reports/text",
			setupMocks: func(p *mockParser, s *mockStore) {
				p.On("Parse", mock.Anything, ingest.Source{Pages: []string{}}).
					Return(nil, domain.NewParseError(domain.FailureNoHeaderPage, errors.New("document has 0 pages")))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				res := decode[api.ErrorResponse](t, rec)
				assert.Equal(t, "no_header_page", res.Kind)
				assert.Contains(t, res.Error, "no header page")
			},
		},
		{
			name:           "invalid json",
			body:           `{"pages":`,
			path:           "/reports/text",
			setupMocks:     func(p *mockParser, s *mockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected error",
			body: `{"pages":["header"]}`,
			path: "/reports/text",
			setupMocks: func(p *mockParser, s *mockStore) {
				p.On("Parse", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(mockParser)
			st := new(mockStore)
			tt.setupMocks(parser, st)
			h := NewHandler(parser, st, plausibility.DefaultLimits())

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.ParseText(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
			parser.AssertExpectations(t)
			st.AssertExpectations(t)
		})
	}
}

func TestParseText_StoreNotConfigured(t *testing.T) {
	parser := new(mockParser)
	parser.On("Parse", mock.Anything, mock.Anything).Return(parsedReport(), nil)
	h := NewHandler(parser, nil, plausibility.DefaultLimits())

	req := httptest.NewRequest(http.MethodPost, "/reports/text?store=true", strings.NewReader(`{"pages":["x"]}`))
	rec := httptest.NewRecorder()

	h.ParseText(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestParseUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "feb.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	parser := new(mockParser)
	parser.On("Parse", mock.Anything, ingest.Source{Location: "feb.pdf", Data: []byte("%PDF-1.4")}).
		Return(parsedReport(), nil)
	h := NewHandler(parser, nil, plausibility.DefaultLimits())

	req := httptest.NewRequest(http.MethodPost, "/reports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.ParseUpload(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	res := decode[api.Report](t, rec)
	assert.Len(t, res.Readings, 2)
	parser.AssertExpectations(t)
}

func TestParseUpload_MissingFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	h := NewHandler(new(mockParser), nil, plausibility.DefaultLimits())
	req := httptest.NewRequest(http.MethodPost, "/reports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.ParseUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing 'file' field")
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetReport(t *testing.T) {
	importedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		st := new(mockStore)
		st.On("GetReport", mock.Anything, "report-1").Return(&store.Report{
			ID:         "report-1",
			Source:     "feb.pdf",
			ImportedAt: importedAt,
			MemberName: "Jane Doe",
			Readings: []store.Reading{
				{ReportID: "report-1", Seq: 0, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Time: "07:45", Systolic: 125, Diastolic: 82, HeartRate: 64, ReadingType: "normal"},
			},
		}, nil)
		h := NewHandler(new(mockParser), st, plausibility.DefaultLimits())

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/reports/report-1", nil), "id", "report-1")
		rec := httptest.NewRecorder()
		h.GetReport(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		res := decode[api.Report](t, rec)
		assert.Equal(t, "report-1", res.ID)
		assert.Equal(t, "feb.pdf", res.Source)
		require.NotNil(t, res.ImportedAt)
		assert.True(t, importedAt.Equal(*res.ImportedAt))
		require.Len(t, res.Readings, 1)
		assert.Nil(t, res.Metadata.SummaryStats)
	})

	t.Run("not found", func(t *testing.T) {
		st := new(mockStore)
		st.On("GetReport", mock.Anything, "missing").Return(nil, readings.ErrReportNotFound)
		h := NewHandler(new(mockParser), st, plausibility.DefaultLimits())

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/reports/missing", nil), "id", "missing")
		rec := httptest.NewRecorder()
		h.GetReport(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListReports(t *testing.T) {
	st := new(mockStore)
	st.On("ListReports", mock.Anything).Return([]store.Report{
		{ID: "a", Source: "feb.pdf", MemberName: "Jane Doe", Month: "February", Year: "2024", ReadingsCount: 42},
	}, nil)
	h := NewHandler(new(mockParser), st, plausibility.DefaultLimits())

	rec := httptest.NewRecorder()
	h.ListReports(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	res := decode[[]api.ReportListItem](t, rec)
	require.Len(t, res, 1)
	assert.Equal(t, 42, res[0].ReadingsCount)
}

func TestListReadings(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	toExclusive := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		path           string
		setupMock      func(*mockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "inclusive range",
			path: "/readings?from=2024-02-01&to=2024-02-29",
			setupMock: func(s *mockStore) {
				s.On("ListReadings", mock.Anything, from, toExclusive).Return([]store.Reading{
					{Date: from, Time: "07:45", Systolic: 118, Diastolic: 76, HeartRate: 60, ReadingType: "normal"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "open range",
			path: "/readings",
			setupMock: func(s *mockStore) {
				s.On("ListReadings", mock.Anything, time.Time{}, time.Time{}).Return([]store.Reading{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[]\n",
		},
		{
			name:           "invalid from",
			path:           "/readings?from=invalid-date",
			setupMock:      func(s *mockStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid 'from' date format. Expected format: YYYY-MM-DD\n",
		},
		{
			name:           "invalid to",
			path:           "/readings?to=2024-13-01",
			setupMock:      func(s *mockStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid 'to' date format. Expected format: YYYY-MM-DD\n",
		},
		{
			name: "store failure",
			path: "/readings",
			setupMock: func(s *mockStore) {
				s.On("ListReadings", mock.Anything, time.Time{}, time.Time{}).Return(nil, errors.New("io error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(mockStore)
			tt.setupMock(st)
			h := NewHandler(new(mockParser), st, plausibility.DefaultLimits())

			rec := httptest.NewRecorder()
			h.ListReadings(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			st.AssertExpectations(t)
		})
	}
}

func TestStoreEndpoints_WithoutStore(t *testing.T) {
	h := NewHandler(new(mockParser), nil, plausibility.DefaultLimits())

	rec := httptest.NewRecorder()
	h.ListReports(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
