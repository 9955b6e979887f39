package project

import (
	"context"
	"database/sql"

	projecterrors "out-of-office/internal/project/errors"
	"out-of-office/internal/shared/contextutil"
	"out-of-office/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Deactivate(ctx context.Context, id string) (ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	gate   validation.Gate
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, gate validation.Gate, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, gate: gate, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create project requested",
		zap.String("request_id", rid),
		zap.String("project_manager_id", req.ProjectManagerID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	p := &Project{ID: uuid.New()}
	if err := s.validateInto(ctx, tx, p, UpdateProjectRequest(req)); err != nil {
		return ProjectResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success",
		zap.String("request_id", rid),
		zap.String("project_id", p.ID.String()),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	s.logger.Debug("get project by id requested", zap.String("project_id", id))
	if uuid.Validate(id) != nil {
		return ProjectResponse{}, projecterrors.ErrProjectNotFound
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get project by id failed", zap.String("project_id", id), zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]ProjectResponse, error) {
	s.logger.Debug("get all projects requested",
		zap.String("status", filter.Status),
		zap.String("search", filter.Search),
	)
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all projects failed", zap.Error(err))
		return nil, err
	}

	out := make([]ProjectResponse, len(items))
	for i, p := range items {
		out[i] = mapToResponse(p)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update project requested",
		zap.String("request_id", rid),
		zap.String("project_id", id),
	)
	if uuid.Validate(id) != nil {
		return ProjectResponse{}, projecterrors.ErrProjectNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := s.validateInto(ctx, tx, p, req); err != nil {
		return ProjectResponse{}, err
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("update project success",
		zap.String("request_id", rid),
		zap.String("project_id", id),
	)
	return mapToResponse(*p), nil
}

// Deactivate marks the project INACTIVE; repeating it is a no-op.
func (s *service) Deactivate(ctx context.Context, id string) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("deactivate project requested",
		zap.String("request_id", rid),
		zap.String("project_id", id),
	)
	if uuid.Validate(id) != nil {
		return ProjectResponse{}, projecterrors.ErrProjectNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if p.Status != StatusInactive {
		p.Status = StatusInactive
		if err := qtx.Update(ctx, p); err != nil {
			s.logger.Error("deactivate project persist failed", zap.Error(err))
			return ProjectResponse{}, mapRepositoryError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("deactivate project success", zap.String("project_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete project requested",
		zap.String("request_id", rid),
		zap.String("project_id", id),
	)
	if uuid.Validate(id) != nil {
		return projecterrors.ErrProjectNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete project failed", zap.String("project_id", id), zap.Error(err))
		return mapDeleteError(err)
	}

	s.logger.Info("delete project success", zap.String("project_id", id))
	return nil
}

// validateInto runs the gate against req and, when it passes, copies the
// request onto p.
func (s *service) validateInto(ctx context.Context, tx *sql.Tx, p *Project, req UpdateProjectRequest) error {
	in := validation.ProjectInput{
		ProjectType:      req.ProjectType,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ProjectManagerID: req.ProjectManagerID,
		Status:           req.Status,
	}
	if req.Comment != nil {
		in.Comment = *req.Comment
	}
	res, err := s.gate.WithTx(tx).ValidateProject(ctx, in)
	if err != nil {
		s.logger.Error("project validation lookup failed", zap.Error(err))
		return err
	}
	if !res.Valid {
		s.logger.Warn("project input invalid", zap.Any("errors", res.Errors))
		return res.Err()
	}

	start, _ := validation.ParseDate(req.StartDate)
	p.ProjectType = req.ProjectType
	p.StartDate = start
	p.EndDate = nil
	if req.EndDate != "" {
		end, _ := validation.ParseDate(req.EndDate)
		p.EndDate = &end
	}
	p.ProjectManagerID = uuid.MustParse(req.ProjectManagerID)
	p.Comment = req.Comment
	p.Status = Status(req.Status)
	return nil
}

func mapToResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:               p.ID.String(),
		ProjectType:      p.ProjectType,
		StartDate:        p.StartDate.Format(validation.DateLayout),
		ProjectManagerID: p.ProjectManagerID.String(),
		Comment:          p.Comment,
		Status:           string(p.Status),
	}
	if p.EndDate != nil {
		resp.EndDate = p.EndDate.Format(validation.DateLayout)
	}
	return resp
}
