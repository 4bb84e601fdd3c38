package services

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/engineer-english/eigo_api/shared"
)

func TestPostgresHandleErrorMessages(t *testing.T) {
	svc := &PostgresService{}

	cases := []struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound, "Resource not found"},
		{gorm.ErrDuplicatedKey, http.StatusConflict, "Resource already exists"},
		{gorm.ErrForeignKeyViolated, http.StatusBadRequest, "Referenced resource does not exist"},
		{errors.New(`duplicate key value violates unique constraint "idx_users_email"`), http.StatusConflict, "Resource already exists"},
		{errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), http.StatusServiceUnavailable, "Database is temporarily unavailable"},
		{errors.New("something unexpected"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		appErr, ok := shared.GetAppError(svc.HandleError(tc.err))
		if !ok {
			t.Fatalf("HandleError(%v) did not return an AppError", tc.err)
		}
		if appErr.StatusCode != tc.wantStatus {
			t.Fatalf("HandleError(%v) status = %d, want %d", tc.err, appErr.StatusCode, tc.wantStatus)
		}
		if appErr.Message != tc.wantMessage {
			t.Fatalf("HandleError(%v) message = %q, want %q", tc.err, appErr.Message, tc.wantMessage)
		}
	}

	if svc.HandleError(nil) != nil {
		t.Fatal("HandleError(nil) should be nil")
	}
}
