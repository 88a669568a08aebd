package matches

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gfl/fantasy-sync/repos/store"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Matches is the interface for the catalogue service.
type Matches interface {
	ListMatches(ctx context.Context, now time.Time) ([]MatchView, error)
	GetMatch(ctx context.Context, matchID string, now time.Time) (MatchView, error)
	GetMatchResult(ctx context.Context, matchID string) (store.MatchResult, error)
	GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	SeedSchedule(ctx context.Context, fixtures []SeedMatchRequest) error
	PatchMatch(ctx context.Context, matchID string, patch store.MatchPatch) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Matches

	// The router for the public read endpoints.
	Router Router

	// The router for the admin-only schedule endpoints.
	AdminRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/matches", h.listMatchesHandler)
	r.GET("/match/:match_id", h.getMatchHandler)
	r.GET("/match/:match_id/result", h.getResultHandler)
	r.GET("/leaderboard", h.leaderboardHandler)

	if opts.AdminRouter != nil {
		a := opts.AdminRouter
		a.POST("/schedule", h.seedScheduleHandler)
		a.POST("/match/:match_id", h.patchMatchHandler)
	}
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) listMatchesHandler(c *gin.Context) {
	matches, err := h.Service.ListMatches(c, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *httpHandler) getMatchHandler(c *gin.Context) {
	matchID := c.Param("match_id")

	match, err := h.Service.GetMatch(c, matchID, time.Now())
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (h *httpHandler) getResultHandler(c *gin.Context) {
	matchID := c.Param("match_id")

	result, err := h.Service.GetMatchResult(c, matchID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "no result yet"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *httpHandler) leaderboardHandler(c *gin.Context) {
	entries, err := h.Service.GetLeaderboard(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *httpHandler) seedScheduleHandler(c *gin.Context) {
	var fixtures []SeedMatchRequest
	if err := c.ShouldBindJSON(&fixtures); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := h.Service.SeedSchedule(c, fixtures); err != nil {
		log.Printf("Could not seed schedule: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": len(fixtures)})
}

func (h *httpHandler) patchMatchHandler(c *gin.Context) {
	matchID := c.Param("match_id")

	var patch store.MatchPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := h.Service.PatchMatch(c, matchID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": matchID})
}
