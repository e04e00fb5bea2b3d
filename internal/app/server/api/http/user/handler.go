package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"medisync/internal/app/server/auth"
	"medisync/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	tokens     *auth.Manager
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, tokens *auth.Manager, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		tokens:     tokens,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &registerOutput{
			Body: RegisterResponse{Status: "Error", Error: err.Error()},
		}, nil
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("invalid credentials")
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.log.Error("issue token", "error", err)
		return nil, huma.Error500InternalServerError("failed to issue token")
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}
