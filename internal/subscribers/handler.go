package subscribers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mkraev/launchlist/internal/pkg/ctxlog"
	"github.com/mkraev/launchlist/internal/pkg/httputil"
	"github.com/mkraev/launchlist/internal/sms"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrNoContactMethod, Status: http.StatusBadRequest, Message: "provide an email address or phone number"},
	{Error: ErrInvalidEmail, Status: http.StatusBadRequest, Message: "invalid email address"},
	{Error: ErrInvalidPhone, Status: http.StatusBadRequest, Message: "invalid phone number"},
	{Error: ErrAlreadySubscribed, Status: http.StatusConflict, Message: "this contact is already subscribed"},
	{Error: ErrNotSubscribed, Status: http.StatusNotFound, Message: "email not found on the list"},
}

// Handler handles HTTP requests for the subscribers module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new subscribers handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers the public subscription routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/subscribe", h.Subscribe)
	r.Get("/subscribers/count", h.Count)
	r.Post("/unsubscribe", h.Unsubscribe)

	r.Route("/sms", func(r chi.Router) {
		r.Post("/inbound", h.InboundSMS)
		r.Post("/status", h.StatusCallback)
	})
}

// SubscribeRequest represents the subscribe request body.
// Empty fields are treated as absent.
type SubscribeRequest struct {
	Email string `json:"email" validate:"omitempty,max=254"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// UnsubscribeRequest represents the unsubscribe request body.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

type subscribeResponse struct {
	ID            int64   `json:"id"`
	Email         *string `json:"email,omitempty"`
	PhoneE164     *string `json:"phone_e164,omitempty"`
	ContactMethod string  `json:"contact_method"`
}

// Subscribe handles POST /subscribe.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.Email, req.Phone)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusCreated, subscribeResponse{
		ID:            sub.ID,
		Email:         sub.Email,
		PhoneE164:     sub.PhoneE164,
		ContactMethod: string(sub.ContactMethod()),
	})
}

// Count handles GET /subscribers/count.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountActive(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]int64{"count": count})
}

// Unsubscribe handles POST /unsubscribe.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]string{"message": "unsubscribed"})
}

// InboundSMS handles POST /sms/inbound, the provider webhook for message
// replies. The provider posts form-encoded From/Body fields and expects a
// TwiML document back.
func (h *Handler) InboundSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" {
		// Malformed payload: empty 400, nothing for the provider to relay.
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := ctxlog.With(r.Context(), "from", from)
	reply, err := h.service.HandleInbound(ctx, from, body)
	if err != nil {
		ctxlog.FromContext(ctx).Error("failed to handle inbound sms", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httputil.XML(w, http.StatusOK, sms.TwiML(reply))
}

// StatusCallback handles POST /sms/status, the provider delivery-status
// callback. Statuses are logged for observability only.
func (h *Handler) StatusCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		ctxlog.FromContext(r.Context()).Info("sms delivery status",
			"message_sid", r.PostFormValue("MessageSid"),
			"status", r.PostFormValue("MessageStatus"),
			"error_code", r.PostFormValue("ErrorCode"),
		)
	}

	w.WriteHeader(http.StatusNoContent)
}
