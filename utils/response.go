package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes the standard success envelope.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// JSONError writes the standard error envelope.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// JSONErrorDetails is JSONError plus the underlying error text for debugging.
func JSONErrorDetails(c *gin.Context, status int, code, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
