package status

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// Source describes one watcher that sent events to the server.
type Source struct {
	ID       string    `json:"source_id"`
	LastSeen time.Time `json:"last_seen"`
	Events   int       `json:"events"`
}

// Service abstracts the server state the API reads.
type Service interface {
	History(ctx context.Context) []event.Event
	Alarms() []string
	Sources() []Source
}

//nolint:gochecknoglobals // gin keeps its mode in a package variable.
var setModeOnce sync.Once

// NewRouter builds the status API. accessLog receives one line per request.
func NewRouter(svc Service, accessLog *zap.SugaredLogger) *gin.Engine {
	setModeOnce.Do(func() {
		gin.SetMode(gin.ReleaseMode)
	})

	r := gin.New()
	r.Use(gin.Recovery(), logRequests(accessLog))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/history", historyHandler(svc))
	r.GET("/alarms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"alarms": svc.Alarms()})
	})
	r.GET("/sources", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sources": svc.Sources()})
	})

	return r
}

// historyHandler returns the retained events, oldest first.
// ?limit=n keeps only the newest n.
func historyHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		events := svc.History(c.Request.Context())

		if raw, ok := c.GetQuery("limit"); ok {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}

			if limit < len(events) {
				events = events[len(events)-limit:]
			}
		}

		values := make([][]float64, 0, len(events))
		for _, e := range events {
			values = append(values, e.Values())
		}

		c.JSON(http.StatusOK, gin.H{"events": values})
	}
}

func logRequests(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		code := c.Writer.Status()
		kvs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", code,
			"duration", time.Since(start),
		}

		switch {
		case code >= http.StatusInternalServerError:
			log.Errorw("Request failed", kvs...)
		case code >= http.StatusBadRequest:
			log.Warnw("Request rejected", kvs...)
		default:
			log.Infow("Request served", kvs...)
		}
	}
}
