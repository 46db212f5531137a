package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/felixdarko/eventplanner-api/apperror"
)

// fail converts any error to the apperror taxonomy and writes the
// {"message": ...} envelope. Internal errors are logged server-side; the
// client only sees the short message.
func fail(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.Internal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}
	c.JSON(appErr.Status(), gin.H{"message": appErr.Message})
}
