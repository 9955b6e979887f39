package employee

import (
	"context"
	"database/sql"

	"out-of-office/internal/domain"
	employeeerrors "out-of-office/internal/employee/errors"
	"out-of-office/internal/shared/apperror"
	"out-of-office/internal/shared/contextutil"
	"out-of-office/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	gate   validation.Gate
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, gate validation.Gate, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		gate:   gate,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("position", req.Position),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	res, err := s.gate.WithTx(tx).ValidateEmployee(ctx, validation.EmployeeInput{
		FullName:           req.FullName,
		Subdivision:        req.Subdivision,
		Position:           req.Position,
		Status:             req.Status,
		PeoplePartnerID:    req.PeoplePartnerID,
		ProjectID:          req.ProjectID,
		OutOfOfficeBalance: req.OutOfOfficeBalance,
	})
	if err != nil {
		s.logger.Error("create employee validation lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if !res.Valid {
		s.logger.Warn("create employee invalid input", zap.Any("errors", res.Errors))
		return EmployeeResponse{}, res.Err()
	}

	empl := &Employee{
		ID:                 uuid.New(),
		FullName:           req.FullName,
		Subdivision:        req.Subdivision,
		Position:           domain.Position(req.Position),
		Status:             Status(req.Status),
		PeoplePartnerID:    uuidPtr(req.PeoplePartnerID),
		ProjectID:          uuidPtr(req.ProjectID),
		OutOfOfficeBalance: req.OutOfOfficeBalance,
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return MapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.String("status", filter.Status),
		zap.String("search", filter.Search),
	)
	empls, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if uuid.Validate(id) != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return MapToResponse(*empl), nil
}

// Deactivate marks the employee inactive. Deactivating an inactive employee
// is a no-op.
func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	if uuid.Validate(id) != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	res, err := s.gate.WithTx(tx).ValidateEmployee(ctx, validation.EmployeeInput{
		FullName:           req.FullName,
		Subdivision:        req.Subdivision,
		Position:           req.Position,
		Status:             req.Status,
		PeoplePartnerID:    req.PeoplePartnerID,
		ProjectID:          req.ProjectID,
		OutOfOfficeBalance: req.OutOfOfficeBalance,
	})
	if err != nil {
		s.logger.Error("update employee validation lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	errs := res.Errors
	if req.PeoplePartnerID != "" && req.PeoplePartnerID == empl.ID.String() {
		errs = append(errs, apperror.FieldError{
			Field:   "people_partner_id",
			Message: "Employee cannot be their own people partner",
		})
	}
	if len(errs) > 0 {
		s.logger.Warn("update employee invalid input", zap.Any("errors", errs))
		return EmployeeResponse{}, apperror.Validation(errs)
	}

	empl.FullName = req.FullName
	empl.Subdivision = req.Subdivision
	empl.Position = domain.Position(req.Position)
	empl.Status = Status(req.Status)
	empl.PeoplePartnerID = uuidPtr(req.PeoplePartnerID)
	empl.ProjectID = uuidPtr(req.ProjectID)
	empl.OutOfOfficeBalance = req.OutOfOfficeBalance

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return MapToResponse(*empl), nil
}

func (s *service) Deactivate(ctx context.Context, id string) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("deactivate employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	if uuid.Validate(id) != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("deactivate employee fetch failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if empl.Status != StatusInactive {
		empl.Status = StatusInactive
		if err := qtx.Update(ctx, empl); err != nil {
			s.logger.Error("deactivate employee persist failed", zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("deactivate employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return MapToResponse(*empl), nil
}

func MapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 empl.ID.String(),
		FullName:           empl.FullName,
		Subdivision:        empl.Subdivision,
		Position:           empl.Position.String(),
		Status:             string(empl.Status),
		PeoplePartnerID:    uuidToString(empl.PeoplePartnerID),
		ProjectID:          uuidToString(empl.ProjectID),
		OutOfOfficeBalance: empl.OutOfOfficeBalance,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = MapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
