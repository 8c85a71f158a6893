package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerIDHeader identifies the acting customer on customer-scoped routes.
const CustomerIDHeader = "X-Customer-ID"

// CustomerRequired rejects requests without a valid customer id header and
// stores the parsed id in the context.
func CustomerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(CustomerIDHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + CustomerIDHeader + " header"})
			return
		}

		customerID, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid " + CustomerIDHeader + " header"})
			return
		}

		c.Set("customer_id", customerID)
		c.Next()
	}
}

// CustomerID returns the customer id set by CustomerRequired.
func CustomerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("customer_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
