package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"out-of-office/internal/employee"
	employeeerrors "out-of-office/internal/employee/errors"
	employeeMock "out-of-office/internal/employee/mock"
	"out-of-office/internal/shared/apperror"
	"out-of-office/internal/validation"
	validationMock "out-of-office/internal/validation/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *employeeMock.MockRepository
	gate    *validationMock.MockGate
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := employeeMock.NewMockRepository(ctrl)
	gate := validationMock.NewMockGate(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: employee.NewService(db, repo, gate),
		repo:    repo,
		gate:    gate,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	partnerID := uuid.New().String()
	req := employee.CreateEmployeeRequest{
		FullName:           "Jane Doe",
		Subdivision:        "Engineering",
		Position:           "Developer",
		Status:             "ACTIVE",
		PeoplePartnerID:    partnerID,
		OutOfOfficeBalance: 10,
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.gate.EXPECT().WithTx(gomock.Any()).Return(deps.gate)
		deps.gate.EXPECT().
			ValidateEmployee(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in validation.EmployeeInput) (validation.Result, error) {
				assert.Equal(t, partnerID, in.PeoplePartnerID)
				assert.Equal(t, 10, in.OutOfOfficeBalance)
				return validation.Result{Valid: true}, nil
			})
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Jane Doe", e.FullName)
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.Equal(t, partnerID, e.PeoplePartnerID.String())
				assert.Nil(t, e.ProjectID)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Developer", resp.Position)
		assert.Equal(t, 10, resp.OutOfOfficeBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - invalid input is rejected before persisting", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.gate.EXPECT().WithTx(gomock.Any()).Return(deps.gate)
		deps.gate.EXPECT().ValidateEmployee(ctx, gomock.Any()).Return(validation.Result{
			Errors: []apperror.FieldError{{Field: "people_partner_id", Message: "not an HR manager"}},
		}, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, apperror.ErrValidation)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, []apperror.FieldError{{Field: "people_partner_id", Message: "not an HR manager"}}, httpErr.Details)
	})

	t.Run("negative - foreign key race maps to validation", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.gate.EXPECT().WithTx(gomock.Any()).Return(deps.gate)
		deps.gate.EXPECT().ValidateEmployee(ctx, gomock.Any()).Return(validation.Result{Valid: true}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23503"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrReferenceNotFound)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success - filter is passed through", func(t *testing.T) {
		deps := setupServiceTest(t)
		filter := employee.Filter{Status: "ACTIVE", Search: "jane"}
		deps.repo.EXPECT().FindAll(ctx, filter).Return([]employee.Employee{
			{ID: uuid.New(), FullName: "Jane Doe", Status: employee.StatusActive},
		}, nil)

		resp, err := deps.service.GetAll(ctx, filter)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "ACTIVE", resp[0].Status)
	})

	t.Run("negative - repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, gomock.Any()).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx, employee.Filter{})

		assert.EqualError(t, err, "db down")
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative - malformed id is not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, "42")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative - missing record", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New().String()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	partnerID := uuid.New()
	req := employee.UpdateEmployeeRequest{
		FullName:           "Jane Doe",
		Subdivision:        "Engineering",
		Position:           "Developer",
		Status:             "ACTIVE",
		PeoplePartnerID:    partnerID.String(),
		OutOfOfficeBalance: 12,
	}

	t.Run("success - assigns a people partner", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Status: employee.StatusActive}, nil)
		deps.gate.EXPECT().WithTx(gomock.Any()).Return(deps.gate)
		deps.gate.EXPECT().
			ValidateEmployee(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in validation.EmployeeInput) (validation.Result, error) {
				assert.Equal(t, partnerID.String(), in.PeoplePartnerID)
				return validation.Result{Valid: true}, nil
			})
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				if assert.NotNil(t, e.PeoplePartnerID) {
					assert.Equal(t, partnerID, *e.PeoplePartnerID)
				}
				assert.Equal(t, 12, e.OutOfOfficeBalance)
				return nil
			})

		resp, err := deps.service.Update(ctx, id.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, partnerID.String(), resp.PeoplePartnerID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - partner must hold the HR Manager position", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id}, nil)
		deps.gate.EXPECT().WithTx(gomock.Any()).Return(deps.gate)
		deps.gate.EXPECT().ValidateEmployee(ctx, gomock.Any()).Return(validation.Result{
			Errors: []apperror.FieldError{{Field: "people_partner_id", Message: "not an HR manager"}},
		}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Update(ctx, id.String(), req)

		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("negative - employee cannot be their own partner", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, false)

		self := req
		self.PeoplePartnerID = id.String()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id}, nil)
		deps.gate.EXPECT().WithTx(gomock.Any()).Return(deps.gate)
		deps.gate.EXPECT().ValidateEmployee(ctx, gomock.Any()).Return(validation.Result{Valid: true}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Update(ctx, id.String(), self)

		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, []apperror.FieldError{{Field: "people_partner_id", Message: "Employee cannot be their own people partner"}},
			apperror.ToHTTP(err).Details)
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative - malformed id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(ctx, "42", req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Status: employee.StatusActive}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, employee.StatusInactive, e.Status)
				return nil
			})

		resp, err := deps.service.Deactivate(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "INACTIVE", resp.Status)
	})

	t.Run("success - already inactive is a no-op", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Status: employee.StatusInactive}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Deactivate(ctx, id.String())

		assert.NoError(t, err)
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New().String()
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Deactivate(ctx, id)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
