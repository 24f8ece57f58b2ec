package middleware

import (
	"strconv"

	"github.com/foodbridge/donation-api/internal/constants"
	apierrors "github.com/foodbridge/donation-api/internal/errors"
	"github.com/gin-gonic/gin"
)

// RequireIDParam parses the :id path parameter and stores it in the context
func RequireIDParam(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+resource+" ID")
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetIDParam retrieves the ID stored by RequireIDParam
func GetIDParam(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
