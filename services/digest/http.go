package digest

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Digester is the interface for the digest service.
type Digester interface {
	GenerateDailyDigest(ctx context.Context, now time.Time) (string, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Digester

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/daily-summary", h.dailySummaryHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) dailySummaryHandler(c *gin.Context) {
	message, err := h.Service.GenerateDailyDigest(c, time.Now())
	if err != nil {
		log.Printf("Daily digest run failed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post daily summary"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
