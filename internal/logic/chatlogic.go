package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"azquote-api/internal/session"
	"azquote-api/internal/svc"
	"azquote-api/internal/types"
	"azquote-api/pkg/agent"
)

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chat advances a requirements conversation by one turn. An empty or unknown
// session id starts a fresh conversation.
func (l *ChatLogic) Chat(req *types.ChatRequest) (*types.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("chat: message is required")
	}

	var sess *session.Session
	if req.SessionID != "" {
		if stored, ok := l.svcCtx.Sessions.Get(req.SessionID); ok {
			sess = stored
		}
	}
	if sess == nil {
		thread, err := l.svcCtx.QuestionAgent.NewThread()
		if err != nil {
			return nil, err
		}
		sess = &session.Session{
			ID:       session.NewID(),
			Messages: thread.Messages(),
		}
		l.Infof("chat: new session %s", sess.ID)
	}

	thread := agent.RestoreThread(sess.Messages)
	reply, done, err := l.svcCtx.QuestionAgent.Ask(l.ctx, thread, req.Message)
	if err != nil {
		return nil, err
	}

	sess.Messages = thread.Messages()
	if done && !sess.Done {
		sess.Done = true
		sess.Requirements = thread.RequirementsTranscript()
		l.Infof("chat: session %s requirements complete", sess.ID)
	}
	l.svcCtx.Sessions.Save(sess)

	return &types.ChatResponse{
		SessionID: sess.ID,
		Reply:     reply,
		Done:      sess.Done,
	}, nil
}
