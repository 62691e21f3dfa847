package identity

import "github.com/jeenmata/impex/internal/domain/shared"

// AggregateTypeApplication is the aggregate type of application events
const AggregateTypeApplication = "DealerApplication"

// Event type constants
const (
	EventTypeApplicationSubmitted = "DealerApplicationSubmitted"
	EventTypeApplicationApproved  = "DealerApplicationApproved"
	EventTypeApplicationRejected  = "DealerApplicationRejected"
)

// ApplicationEvent is published when an application is submitted or reviewed
type ApplicationEvent struct {
	shared.BaseDomainEvent
	BusinessName string            `json:"business_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	WhatsApp     string            `json:"whatsapp,omitempty"`
	Status       ApplicationStatus `json:"status"`
}

// NewApplicationEvent creates an ApplicationEvent of the given type
func NewApplicationEvent(eventType string, a *DealerApplication) *ApplicationEvent {
	return &ApplicationEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeApplication, a.ID),
		BusinessName:    a.BusinessName,
		Email:           a.Email,
		Phone:           a.Phone,
		WhatsApp:        a.WhatsApp,
		Status:          a.Status,
	}
}
