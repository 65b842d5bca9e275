package request_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	assert.Equal(t, request.ClientWeb, request.ResolveClientType("WEB", ""))
	assert.Equal(t, request.ClientMobile, request.ResolveClientType("", "okhttp/4.9"))
	assert.Equal(t, request.ClientWeb, request.ResolveClientType("", "Mozilla/5.0"))
	assert.Equal(t, request.ClientAPI, request.ResolveClientType("", ""))
	assert.True(t, request.IsWebClient(request.ClientWeb))
	assert.False(t, request.IsWebClient(request.ClientAPI))
}

func TestActor(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := request.Actor(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	empID := uuid.New()
	actor := domain.Actor{UserID: uuid.New(), EmployeeID: &empID, Role: domain.RoleHR}
	request.SetActor(c, actor)

	got, err := request.Actor(c)
	assert.NoError(t, err)
	assert.Equal(t, actor, got)
	assert.Equal(t, "HR", c.GetString("role"))
	assert.Equal(t, empID.String(), c.GetString("employee_id"))
}

func TestQueryInt(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?year=2024&page=x", nil)

	assert.Equal(t, 2024, request.QueryInt(c, "year", 0))
	assert.Equal(t, 1, request.QueryInt(c, "page", 1))
	assert.Equal(t, 10, request.QueryInt(c, "page_size", 10))
}

func TestBindOptionalJSON(t *testing.T) {
	type body struct {
		Notes string `json:"notes"`
	}

	newContext := func(req *http.Request) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		return c
	}

	t.Run("no body", func(t *testing.T) {
		var got body
		c := newContext(httptest.NewRequest(http.MethodPost, "/", nil))

		assert.NoError(t, request.BindOptionalJSON(c, &got))
		assert.Empty(t, got.Notes)
	})

	t.Run("chunked empty body", func(t *testing.T) {
		var got body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}

		assert.NoError(t, request.BindOptionalJSON(newContext(req), &got))
	})

	t.Run("json body", func(t *testing.T) {
		var got body
		c := newContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":"late train"}`)))

		assert.NoError(t, request.BindOptionalJSON(c, &got))
		assert.Equal(t, "late train", got.Notes)
	})

	t.Run("malformed body", func(t *testing.T) {
		var got body
		c := newContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":`)))

		err := request.BindOptionalJSON(c, &got)

		var appErr *apperror.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		}
	})
}
