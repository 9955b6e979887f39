package project_test

import (
	"context"
	"testing"

	"out-of-office/internal/project"
	projecterrors "out-of-office/internal/project/errors"
	projectMock "out-of-office/internal/project/mock"
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

func setupProjectService(t *testing.T) (project.Service, sqlmock.Sqlmock, *projectMock.MockRepository, *validationMock.MockGate) {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := projectMock.NewMockRepository(ctrl)
	gate := validationMock.NewMockGate(ctrl)
	return project.NewService(db, repo, gate), sqlMock, repo, gate
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.NewString()
	req := project.CreateProjectRequest{
		ProjectType:      "Internal",
		StartDate:        "2024-01-01",
		EndDate:          "2024-12-31",
		ProjectManagerID: managerID,
		Status:           "ACTIVE",
	}

	t.Run("success", func(t *testing.T) {
		svc, sqlMock, repo, gate := setupProjectService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		gate.EXPECT().WithTx(gomock.Any()).Return(gate)
		gate.EXPECT().ValidateProject(ctx, gomock.Any()).Return(validation.Result{Valid: true}, nil)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *project.Project) error {
				assert.Equal(t, managerID, p.ProjectManagerID.String())
				assert.NotNil(t, p.EndDate)
				return nil
			})

		resp, err := svc.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "2024-01-01", resp.StartDate)
		assert.Equal(t, "2024-12-31", resp.EndDate)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - manager without position", func(t *testing.T) {
		svc, sqlMock, _, gate := setupProjectService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		gate.EXPECT().WithTx(gomock.Any()).Return(gate)
		gate.EXPECT().ValidateProject(ctx, gomock.Any()).Return(validation.Result{
			Errors: []apperror.FieldError{{Field: "project_manager_id", Message: "must be a project manager"}},
		}, nil)

		_, err := svc.Create(ctx, req)

		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestProjectService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative - not found", func(t *testing.T) {
		svc, _, repo, _ := setupProjectService(t)
		id := uuid.NewString()
		repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
	})
}

func TestProjectService_GetAll(t *testing.T) {
	ctx := context.Background()
	svc, _, repo, _ := setupProjectService(t)
	filter := project.Filter{Status: "ACTIVE", Search: "intern"}
	repo.EXPECT().FindAll(ctx, filter).Return([]project.Project{
		{ID: uuid.New(), ProjectType: "Internal", Status: project.StatusActive},
	}, nil)

	resp, err := svc.GetAll(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Internal", resp[0].ProjectType)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New()
	req := project.UpdateProjectRequest{
		ProjectType:      "Client",
		StartDate:        "2024-02-01",
		ProjectManagerID: managerID.String(),
		Status:           "ACTIVE",
	}

	t.Run("success - replaces attributes", func(t *testing.T) {
		svc, sqlMock, repo, gate := setupProjectService(t)
		id := uuid.New()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		end, _ := validation.ParseDate("2024-06-30")
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, id.String()).Return(&project.Project{ID: id, ProjectType: "Internal", EndDate: &end}, nil)
		gate.EXPECT().WithTx(gomock.Any()).Return(gate)
		gate.EXPECT().ValidateProject(ctx, gomock.Any()).Return(validation.Result{Valid: true}, nil)
		repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *project.Project) error {
				assert.Equal(t, id, p.ID)
				assert.Equal(t, "Client", p.ProjectType)
				assert.Nil(t, p.EndDate)
				assert.Equal(t, managerID, p.ProjectManagerID)
				return nil
			})

		resp, err := svc.Update(ctx, id.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "2024-02-01", resp.StartDate)
		assert.Empty(t, resp.EndDate)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - invalid input is not persisted", func(t *testing.T) {
		svc, sqlMock, repo, gate := setupProjectService(t)
		id := uuid.New()
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, id.String()).Return(&project.Project{ID: id}, nil)
		gate.EXPECT().WithTx(gomock.Any()).Return(gate)
		gate.EXPECT().ValidateProject(ctx, gomock.Any()).Return(validation.Result{
			Errors: []apperror.FieldError{{Field: "start_date", Message: "must be earlier than end date"}},
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Update(ctx, id.String(), req)

		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("negative - not found", func(t *testing.T) {
		svc, sqlMock, repo, _ := setupProjectService(t)
		id := uuid.NewString()
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, id, req)

		assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
	})
}

func TestProjectService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, sqlMock, repo, _ := setupProjectService(t)
		id := uuid.New()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, id.String()).Return(&project.Project{ID: id, Status: project.StatusActive}, nil)
		repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *project.Project) error {
				assert.Equal(t, project.StatusInactive, p.Status)
				return nil
			})

		resp, err := svc.Deactivate(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "INACTIVE", resp.Status)
	})

	t.Run("success - already inactive is a no-op", func(t *testing.T) {
		svc, sqlMock, repo, _ := setupProjectService(t)
		id := uuid.New()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, id.String()).Return(&project.Project{ID: id, Status: project.StatusInactive}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Deactivate(ctx, id.String())

		assert.NoError(t, err)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _, repo, _ := setupProjectService(t)
		id := uuid.NewString()
		repo.EXPECT().Delete(ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("negative - employees still assigned", func(t *testing.T) {
		svc, _, repo, _ := setupProjectService(t)
		id := uuid.NewString()
		repo.EXPECT().Delete(ctx, id).Return(&pgconn.PgError{Code: "23503", ConstraintName: "fk_employees_project"})

		err := svc.Delete(ctx, id)

		assert.ErrorIs(t, err, projecterrors.ErrProjectInUse)
	})

	t.Run("negative - not found", func(t *testing.T) {
		svc, _, repo, _ := setupProjectService(t)
		id := uuid.NewString()
		repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, id), projecterrors.ErrProjectNotFound)
	})

	t.Run("negative - malformed id", func(t *testing.T) {
		svc, _, _, _ := setupProjectService(t)

		assert.ErrorIs(t, svc.Delete(ctx, "42"), projecterrors.ErrProjectNotFound)
	})
}
