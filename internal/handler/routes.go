// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"azquote-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/api/chat",
				Handler: ChatHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/generate-proposal",
				Handler: GenerateProposalHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/reset",
				Handler: ResetHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
		},
	)
}
