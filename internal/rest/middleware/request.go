package middleware

import (
	"context"

	"github.com/flexprice/propbill/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware propagates X-Request-ID and stamps the acting user for audit columns
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	// the API has no authentication, every change is recorded as the system user
	if types.GetUserID(ctx) == "" {
		ctx = types.SetUserID(ctx, types.DefaultUserID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
