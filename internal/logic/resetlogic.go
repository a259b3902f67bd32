package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"azquote-api/internal/svc"
	"azquote-api/internal/types"
)

type ResetLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewResetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ResetLogic {
	return &ResetLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Reset discards the session's conversation. Resetting a missing session is
// not an error; the client outcome is the same.
func (l *ResetLogic) Reset(req *types.ResetRequest) (*types.ResetResponse, error) {
	if req.SessionID == "" {
		return nil, errors.New("reset: sessionId is required")
	}

	l.svcCtx.Sessions.Delete(req.SessionID)
	l.Infof("reset: session %s cleared", req.SessionID)

	return &types.ResetResponse{
		SessionID: req.SessionID,
		Reset:     true,
	}, nil
}
