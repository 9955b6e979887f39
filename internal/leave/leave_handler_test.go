package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"out-of-office/internal/leave"
	leaveerrors "out-of-office/internal/leave/errors"
	leaveMock "out-of-office/internal/leave/mock"
	"out-of-office/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestLeaveHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaveMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "2024-03-01", req.StartDate)
				return leave.LeaveResponse{ID: uuid.NewString(), Status: "NEW"}, nil
			})

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.NewString() + `","absence_reason":"Vacation","start_date":"2024-03-01","end_date":"2024-03-03"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"status":"NEW"`)
	})

	t.Run("negative - validation details are returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaveMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(leave.LeaveResponse{}, apperror.Validation([]apperror.FieldError{
				{Field: "start_date", Message: "Start Date must be earlier than End Date"},
			}))

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeValidation, env.Error.Code)
		assert.Contains(t, string(env.Error.Details), "start_date")
	})
}

func TestLeaveHandler_Toggle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"success", nil, http.StatusOK, ""},
		{"negative - terminal status", leaveerrors.ErrInvalidStatusTransition, http.StatusBadRequest, apperror.CodeInvalidState},
		{"negative - no people partner", leaveerrors.ErrApproverNotAssigned, http.StatusUnprocessableEntity, apperror.CodePreconditionFailed},
		{"negative - concurrent change", leaveerrors.ErrConcurrentModification, http.StatusConflict, apperror.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := leaveMock.NewMockService(ctrl)
			id := uuid.NewString()
			svc.EXPECT().
				SubmitOrCancel(gomock.Any(), id).
				Return(leave.LeaveResponse{ID: id, Status: "SUBMITTED"}, tt.err)

			h := leave.NewHandler(svc)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: id}}
			c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/leave-requests/"+id+"/toggle", nil)

			h.Toggle(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope(t, w)
			if tt.err == nil {
				assert.True(t, env.Ok)
				assert.Contains(t, string(env.Data), "SUBMITTED")
				return
			}
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestLeaveHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success - filters are passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaveMock.NewMockService(ctrl)
		employeeID := uuid.NewString()
		svc.EXPECT().
			GetAll(gomock.Any(), leave.Filter{Status: "SUBMITTED", EmployeeID: employeeID}).
			Return([]leave.LeaveResponse{{ID: uuid.NewString()}}, nil)

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leave-requests?status=SUBMITTED&employee_id="+employeeID, nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative - unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaveMock.NewMockService(ctrl)

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leave-requests?status=PENDING", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	svc := leaveMock.NewMockService(ctrl)
	id := uuid.NewString()
	svc.EXPECT().Delete(gomock.Any(), id).Return(leaveerrors.ErrLeaveNotFound)

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/leave-requests/"+id, nil)

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
