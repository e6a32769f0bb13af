package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/webhooks/v6/github"
	"go.uber.org/zap"

	"github.com/raj-prabhakar/webhook-repo/internal/domain"
	"github.com/raj-prabhakar/webhook-repo/internal/dto"
	"github.com/raj-prabhakar/webhook-repo/internal/service"
)

const contentTypeJSON = "application/json"

const homeHTML = `<!DOCTYPE html>
<html>
<head><title>Webhook Events</title></head>
<body>
<h1>Webhook Events</h1>
<p>POST GitHub webhooks to the receiver endpoint; stored events are served as JSON from fetch_events.</p>
</body>
</html>
`

type Handler struct {
	eventService service.EventServicer
	router       *gin.Engine
	hook         *github.Webhook
	log          *zap.Logger
}

// NewHandler wires the webhook routes under pathPrefix, e.g. "/webhook".
func NewHandler(eventService service.EventServicer, pathPrefix string, log *zap.Logger) (*Handler, error) {
	// No secret option: signature verification is out of scope for this
	// receiver, the hook is used purely for typed payload parsing.
	hook, err := github.New()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		eventService: eventService,
		router:       gin.Default(),
		hook:         hook,
		log:          log,
	}

	h.registerRoutes(pathPrefix)

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes(pathPrefix string) {
	h.router.GET("/", h.home)
	h.router.GET("/health", h.healthCheck)

	webhooks := h.router.Group(pathPrefix)
	webhooks.POST("/receiver", h.receiveWebhook)
	webhooks.GET("/fetch_events", h.fetchEvents)
}

// home serves a minimal landing page.
func (h *Handler) home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homeHTML))
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// receiveWebhook handles POST {prefix}/receiver.
//
// Deliveries this service does not track still get a 200 acknowledgement:
// GitHub marks non-2xx deliveries as failed and redelivers them, so an
// unsupported content type or event category is a soft skip, not an error.
func (h *Handler) receiveWebhook(c *gin.Context) {
	if c.ContentType() != contentTypeJSON {
		h.log.Info("Skipping webhook with unsupported content type",
			zap.String("content_type", c.ContentType()))
		c.JSON(http.StatusOK, dto.WebhookResponse{
			Status:  "success",
			Message: "Event processed but not stored",
		})
		return
	}

	payload, err := h.hook.Parse(c.Request, github.PushEvent, github.PullRequestEvent)
	if err != nil {
		if errors.Is(err, github.ErrEventNotFound) || errors.Is(err, github.ErrMissingGithubEventHeader) {
			h.log.Info("Skipping unrecognized webhook event",
				zap.String("event", c.GetHeader("X-GitHub-Event")))
			c.JSON(http.StatusOK, dto.WebhookResponse{
				Status:  "success",
				Message: "Event processed but not stored",
			})
			return
		}

		h.log.Error("Failed to parse webhook payload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	result, err := h.eventService.ProcessWebhook(c.Request.Context(), payload)
	if err != nil {
		h.log.Error("Failed to process webhook",
			zap.Error(err),
			zap.String("event", c.GetHeader("X-GitHub-Event")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	switch {
	case result.Stored:
		c.JSON(http.StatusOK, dto.WebhookResponse{
			Status:  "success",
			Message: storedMessage(result.Event.Action),
			Data:    result.Event,
		})
	case result.Duplicate:
		c.JSON(http.StatusOK, dto.WebhookResponse{
			Status:  "success",
			Message: "Duplicate event ignored",
		})
	default:
		c.JSON(http.StatusOK, dto.WebhookResponse{
			Status:  "success",
			Message: "Event processed but not stored",
		})
	}
}

// fetchEvents handles GET {prefix}/fetch_events.
func (h *Handler) fetchEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to fetch events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:  "error",
			Message: "Error fetching events: " + err.Error(),
		})
		return
	}

	if len(events) == 0 {
		c.JSON(http.StatusOK, dto.FetchEventsResponse{
			Status:  "success",
			Message: "No events found",
		})
		return
	}

	c.JSON(http.StatusOK, dto.FetchEventsResponse{
		Status:  "success",
		Message: "Fetched events successfully",
		Data:    events,
	})
}

func storedMessage(action domain.Action) string {
	switch action {
	case domain.ActionPullRequest:
		return "Pull request event stored successfully"
	case domain.ActionMerge:
		return "Merge event stored successfully"
	default:
		return "Push event stored successfully"
	}
}
