package server

import (
	"github.com/gin-gonic/gin"
	"github.com/glisdarx/beee-media/pkg/errors"
	"go.uber.org/zap"
)

// writeMessage aborts with {"error": msg}.
func writeMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// writeError maps err onto its HTTP status and public message.
func (s *Server) writeError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("Handler error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	writeMessage(c, status, errors.PublicMessage(err))
}
