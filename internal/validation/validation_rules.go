package validation

import (
	"out-of-office/internal/domain"

	"github.com/go-playground/validator/v10"
)

const tagBeforeEndDate = "before_end_date"

func validatePosition(fl validator.FieldLevel) bool {
	return domain.Position(fl.Field().String()).Valid()
}

func leaveDateOrder(sl validator.StructLevel) {
	in := sl.Current().Interface().(LeaveRequestInput)
	checkDateOrder(sl, in.StartDate, in.EndDate)
}

func projectDateOrder(sl validator.StructLevel) {
	in := sl.Current().Interface().(ProjectInput)
	if in.EndDate == "" {
		return
	}
	checkDateOrder(sl, in.StartDate, in.EndDate)
}

// checkDateOrder only compares well-formed dates; malformed ones are already
// reported by the datetime rule.
func checkDateOrder(sl validator.StructLevel, start, end string) {
	s, err := ParseDate(start)
	if err != nil {
		return
	}
	e, err := ParseDate(end)
	if err != nil {
		return
	}
	if !s.Before(e) {
		sl.ReportError(start, "start_date", "StartDate", tagBeforeEndDate, "")
	}
}
