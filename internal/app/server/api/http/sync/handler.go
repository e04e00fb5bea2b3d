package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"medisync/internal/domain/feed"
)

// entity binds a wire field key to its record_type in the change log.
// Reference data (facilities, protocols) is server-authored and pull-only.
type entity struct {
	key        string
	recordType string
	pushable   bool
}

var entities = []entity{
	{key: "patients", recordType: "patient", pushable: true},
	{key: "blood_pressures", recordType: "blood_pressure", pushable: true},
	{key: "blood_sugars", recordType: "blood_sugar", pushable: true},
	{key: "prescription_drugs", recordType: "prescription", pushable: true},
	{key: "appointments", recordType: "appointment", pushable: true},
	{key: "facilities", recordType: "facility"},
	{key: "protocols", recordType: "protocol"},
}

type Handler struct {
	service    feed.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service feed.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	for _, e := range entities {
		huma.Register(api, h.pullOp(e), h.pull(e))
		if e.pushable {
			huma.Register(api, h.pushOp(e), h.push(e))
		}
	}
}

func (h *Handler) pull(e entity) func(context.Context, *pullInput) (*pullOutput, error) {
	return func(ctx context.Context, input *pullInput) (*pullOutput, error) {
		payloads, token, err := h.service.Changes(ctx, e.recordType, input.ProcessToken, input.Limit)
		if err != nil {
			h.log.Warn("pull failed", "entity", e.key, "error", err)
			return nil, huma.Error400BadRequest(err.Error())
		}

		if payloads == nil {
			payloads = []json.RawMessage{}
		}
		body, err := json.Marshal(map[string]any{
			e.key:           payloads,
			"process_token": token,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("encode pull response")
		}

		return &pullOutput{ContentType: "application/json", Body: body}, nil
	}
}

func (h *Handler) push(e entity) func(context.Context, *pushInput) (*pushOutput, error) {
	return func(ctx context.Context, input *pushInput) (*pushOutput, error) {
		var body map[string]json.RawMessage
		if err := json.Unmarshal(input.RawBody, &body); err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("malformed push body: %v", err))
		}

		var payloads []json.RawMessage
		if raw, ok := body[e.key]; ok {
			if err := json.Unmarshal(raw, &payloads); err != nil {
				return nil, huma.Error400BadRequest(fmt.Sprintf("field %q must be an array: %v", e.key, err))
			}
		}

		recordErrs, err := h.service.Apply(ctx, e.recordType, payloads)
		if err != nil {
			h.log.Error("push failed", "entity", e.key, "error", err)
			return nil, huma.Error500InternalServerError("apply batch")
		}

		return &pushOutput{Body: PushResponse{Errors: recordErrs}}, nil
	}
}
