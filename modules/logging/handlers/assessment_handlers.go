package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/logging/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/composables"
	"github.com/skillbase-io/skillbase/pkg/configuration"
)

// AssessmentEventsHandler mirrors assessment and template lifecycle events
// into the audit trail.
type AssessmentEventsHandler struct {
	app     application.Application
	service *services.AuditService
	logger  *logrus.Logger
}

func RegisterAssessmentEventHandlers(app application.Application) {
	handler := &AssessmentEventsHandler{
		app:     app,
		service: app.Service(services.AuditService{}).(*services.AuditService),
		logger:  configuration.Use().Logger(),
	}
	app.EventPublisher().Subscribe(handler.onAssessmentCreated)
	app.EventPublisher().Subscribe(handler.onAssessmentSubmitted)
	app.EventPublisher().Subscribe(handler.onAssessmentReopened)
	app.EventPublisher().Subscribe(handler.onAssessmentDeleted)
	app.EventPublisher().Subscribe(handler.onTemplateCreated)
	app.EventPublisher().Subscribe(handler.onTemplateUpdated)
	app.EventPublisher().Subscribe(handler.onTemplateDeleted)
}

func (h *AssessmentEventsHandler) log(actor, action, entityType, entityID string, payload any) {
	ctx := composables.WithPool(context.Background(), h.app.Pool())
	if err := h.service.Log(ctx, actor, action, entityType, entityID, payload); err != nil {
		h.logger.WithError(err).
			WithField("action", action).
			Warn("failed to persist action log")
	}
}

func (h *AssessmentEventsHandler) onAssessmentCreated(event *assessment.CreatedEvent) {
	h.log("system", "assessment.created", "assessment", event.Result.ID.String(), event.Result)
}

func (h *AssessmentEventsHandler) onAssessmentSubmitted(event *assessment.SubmittedEvent) {
	h.log(event.Actor, "assessment.submitted", "assessment", event.Result.ID.String(), event.Result)
}

func (h *AssessmentEventsHandler) onAssessmentReopened(event *assessment.ReopenedEvent) {
	h.log(event.Actor, "assessment.reopened", "assessment", event.Result.ID.String(), event.Result)
}

func (h *AssessmentEventsHandler) onAssessmentDeleted(event *assessment.DeletedEvent) {
	h.log("system", "assessment.deleted", "assessment", event.ID.String(), event)
}

func (h *AssessmentEventsHandler) onTemplateCreated(event *template.CreatedEvent) {
	h.log("system", "template.created", "template", event.Result.ID.String(), event.Result)
}

func (h *AssessmentEventsHandler) onTemplateUpdated(event *template.UpdatedEvent) {
	h.log("system", "template.updated", "template", event.Result.ID.String(), event.Result)
}

func (h *AssessmentEventsHandler) onTemplateDeleted(event *template.DeletedEvent) {
	h.log("system", "template.deleted", "template", event.ID.String(), event)
}
