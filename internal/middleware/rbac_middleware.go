package middleware

import (
	"out-of-office/internal/domain"
	"out-of-office/internal/shared/apperror"
	"out-of-office/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize lets the request through when the caller's position may
// perform action on resource.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString(ContextEmployeeID)
		position := c.GetString(ContextPosition)
		if employeeID == "" || position == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			Position:   position,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			response.Error(c,
				apperror.ErrForbidden.HTTPStatus,
				apperror.ErrForbidden.Code,
				apperror.ErrForbidden.Message,
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
