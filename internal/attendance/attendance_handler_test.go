package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/attendance"
	attendanceerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/attendance/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn  func(ctx context.Context, actor domain.Actor, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOutFn func(ctx context.Context, actor domain.Actor, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	getAllFn   func(ctx context.Context, actor domain.Actor, q attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, int64, error)
	exportFn   func(ctx context.Context, actor domain.Actor, q attendance.ExportAttendanceQuery) (attendance.ExportFile, error)
}

func (f *fakeService) ClockIn(ctx context.Context, actor domain.Actor, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, actor, req)
}
func (f *fakeService) ClockOut(ctx context.Context, actor domain.Actor, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx, actor, req)
}
func (f *fakeService) GetAll(ctx context.Context, actor domain.Actor, q attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, int64, error) {
	return f.getAllFn(ctx, actor, q)
}
func (f *fakeService) Export(ctx context.Context, actor domain.Actor, q attendance.ExportAttendanceQuery) (attendance.ExportFile, error) {
	return f.exportFn(ctx, actor, q)
}

func withActor(actor domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		request.SetActor(c, actor)
		c.Next()
	}
}

func TestHandler_ClockInAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New()
	actor := domain.Actor{UserID: uuid.New(), EmployeeID: &employeeID, Role: domain.RoleEmployee}

	svc := &fakeService{
		clockInFn: func(ctx context.Context, a domain.Actor, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, *a.EmployeeID)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: employeeID.String()}, nil
		},
		getAllFn: func(ctx context.Context, a domain.Actor, q attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, int64, error) {
			assert.Equal(t, 1, q.PageSize)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}}, 2, nil
		},
	}

	h := attendance.NewHandler(svc)
	r := gin.New()
	r.Use(withActor(actor))
	r.POST("/attendances/clock-in", h.ClockIn)
	r.GET("/attendances", h.GetAll)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances/clock-in", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/attendances?page=1&page_size=1", nil))
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"totalPages":2`)
}

func TestHandler_ClockIn_EmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New()
	svc := &fakeService{
		clockInFn: func(ctx context.Context, a domain.Actor, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		},
	}
	h := attendance.NewHandler(svc)
	r := gin.New()
	r.Use(withActor(domain.Actor{UserID: uuid.New(), EmployeeID: &employeeID, Role: domain.RoleEmployee}))
	r.POST("/attendances/clock-in", h.ClockIn)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendances/clock-in", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Export(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		exportFn: func(ctx context.Context, a domain.Actor, q attendance.ExportAttendanceQuery) (attendance.ExportFile, error) {
			return attendance.ExportFile{Filename: "attendance.xlsx", ContentType: "application/octet-stream", Content: []byte("PK")}, nil
		},
	}
	h := attendance.NewHandler(svc)
	r := gin.New()
	r.Use(withActor(domain.Actor{UserID: uuid.New(), Role: domain.RoleHR}))
	r.GET("/attendances/export", h.Export)

	t.Run("missing range", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances/export", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("streams file", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances/export?from=2024-03-01&to=2024-03-31", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance.xlsx")
	})
}
