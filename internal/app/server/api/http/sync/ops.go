package sync

import (
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) pullOp(e entity) huma.Operation {
	return huma.Operation{
		OperationID: fmt.Sprintf("sync-pull-%s", e.key),
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/" + e.key,
		Summary:     fmt.Sprintf("Pull one page of the %s change feed", e.key),
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pushOp(e entity) huma.Operation {
	return huma.Operation{
		OperationID: fmt.Sprintf("sync-push-%s", e.key),
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/" + e.key,
		Summary:     fmt.Sprintf("Push a batch of %s", e.key),
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}
