package predictions

import (
	"context"
	"log"
	"net/http"

	auth "firebase.google.com/go/v4/auth"
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

// Predictions is the interface for the prediction capture service.
type Predictions interface {
	SavePrediction(ctx context.Context, userID string, request SavePredictionRequest) (store.Prediction, error)
	GetUserPredictions(ctx context.Context, userID string) ([]store.Prediction, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Predictions

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/prediction", h.savePredictionHandler)
	r.GET("/predictions", h.userPredictionsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) savePredictionHandler(c *gin.Context) {
	token := c.MustGet("token").(*auth.Token)

	var request SavePredictionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	prediction, err := h.Service.SavePrediction(c, token.UID, request)
	if err != nil {
		switch err {
		case ErrPredictionsLocked:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case ErrMissingTeamPick, ErrQuestionNotInMatch:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		default:
			log.Printf("Could not save prediction: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"prediction": prediction})
}

func (h *httpHandler) userPredictionsHandler(c *gin.Context) {
	token := c.MustGet("token").(*auth.Token)

	predictions, err := h.Service.GetUserPredictions(c, token.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
