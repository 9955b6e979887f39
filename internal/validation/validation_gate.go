package validation

import (
	"context"
	"database/sql"
	"errors"

	"out-of-office/internal/domain"
	"out-of-office/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

//go:generate mockgen -source=validation_gate.go -destination=mock/validation_gate_mock.go -package=mock

// Gate validates entity inputs in two stages. Field rules run first and every
// violation is reported; cross-entity rules only run on structurally valid
// input and also report every violation.
type Gate interface {
	WithTx(tx *sql.Tx) Gate
	ValidateLeaveRequest(ctx context.Context, in LeaveRequestInput) (Result, error)
	ValidateApprovalRequest(ctx context.Context, in ApprovalRequestInput) (Result, error)
	ValidateEmployee(ctx context.Context, in EmployeeInput) (Result, error)
	ValidateProject(ctx context.Context, in ProjectInput) (Result, error)
}

type gate struct {
	lookup   Lookup
	validate *validator.Validate
	logger   *zap.Logger
}

func NewGate(lookup Lookup, logger ...*zap.Logger) Gate {
	l := zap.L().Named("validation.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("validation.gate")
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(apperror.JSONTagName)
	if err := v.RegisterValidation("position", validatePosition); err != nil {
		l.Panic("register position rule", zap.Error(err))
	}
	v.RegisterStructValidation(leaveDateOrder, LeaveRequestInput{})
	v.RegisterStructValidation(projectDateOrder, ProjectInput{})

	return &gate{lookup: lookup, validate: v, logger: l}
}

func (g *gate) WithTx(tx *sql.Tx) Gate {
	return &gate{lookup: g.lookup.WithTx(tx), validate: g.validate, logger: g.logger}
}

func (g *gate) ValidateLeaveRequest(ctx context.Context, in LeaveRequestInput) (Result, error) {
	if errs := g.fieldErrors(in); len(errs) > 0 {
		return newResult(errs), nil
	}

	var errs []apperror.FieldError
	ok, err := g.lookup.EmployeeExists(ctx, in.EmployeeID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		errs = append(errs, notFound("employee_id", "Employee"))
	}

	return newResult(errs), nil
}

func (g *gate) ValidateApprovalRequest(ctx context.Context, in ApprovalRequestInput) (Result, error) {
	if errs := g.fieldErrors(in); len(errs) > 0 {
		return newResult(errs), nil
	}

	var errs []apperror.FieldError
	ok, err := g.lookup.EmployeeExists(ctx, in.ApproverID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		errs = append(errs, notFound("approver_id", "Approver"))
	}

	ok, err = g.lookup.LeaveRequestExists(ctx, in.LeaveRequestID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		errs = append(errs, notFound("leave_request_id", "Leave request"))
	}

	return newResult(errs), nil
}

func (g *gate) ValidateEmployee(ctx context.Context, in EmployeeInput) (Result, error) {
	if errs := g.fieldErrors(in); len(errs) > 0 {
		return newResult(errs), nil
	}

	var errs []apperror.FieldError
	if in.PeoplePartnerID != "" {
		ok, err := g.lookup.EmployeeHoldsPosition(ctx, in.PeoplePartnerID, domain.PositionHRManager)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			errs = append(errs, apperror.FieldError{
				Field:   "people_partner_id",
				Message: "People partner must be an existing employee with the HR Manager position",
			})
		}
	}

	if in.ProjectID != "" {
		ok, err := g.lookup.ProjectExists(ctx, in.ProjectID)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			errs = append(errs, notFound("project_id", "Project"))
		}
	}

	return newResult(errs), nil
}

func (g *gate) ValidateProject(ctx context.Context, in ProjectInput) (Result, error) {
	if errs := g.fieldErrors(in); len(errs) > 0 {
		return newResult(errs), nil
	}

	var errs []apperror.FieldError
	ok, err := g.lookup.EmployeeHoldsPosition(ctx, in.ProjectManagerID, domain.PositionProjectManager)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		errs = append(errs, apperror.FieldError{
			Field:   "project_manager_id",
			Message: "Project manager must be an existing employee with the Project Manager position",
		})
	}

	return newResult(errs), nil
}

func (g *gate) fieldErrors(in any) []apperror.FieldError {
	err := g.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		g.logger.Error("struct validation failed", zap.Error(err))
		return []apperror.FieldError{{Field: "", Message: "Input could not be validated"}}
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, apperror.FieldError{Field: e.Field(), Message: apperror.DescribeRule(e)})
	}
	return out
}

func notFound(field, entity string) apperror.FieldError {
	return apperror.FieldError{Field: field, Message: entity + " does not exist"}
}
