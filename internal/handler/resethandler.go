package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"azquote-api/internal/logic"
	"azquote-api/internal/svc"
	"azquote-api/internal/types"
)

func ResetHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ResetRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewResetLogic(r.Context(), svcCtx)
		resp, err := l.Reset(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
