package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"azquote-api/internal/session"
	"azquote-api/internal/types"
)

func TestReset(t *testing.T) {
	svcCtx := newTestServiceContext(t, &scriptedLLM{}, &staticResolver{})
	svcCtx.Sessions.Save(&session.Session{ID: "sess-1", Done: true})

	l := NewResetLogic(context.Background(), svcCtx)
	resp, err := l.Reset(&types.ResetRequest{SessionID: "sess-1"})
	require.NoError(t, err)
	require.True(t, resp.Reset)

	_, ok := svcCtx.Sessions.Get("sess-1")
	require.False(t, ok)
}

func TestReset_MissingSessionStillSucceeds(t *testing.T) {
	svcCtx := newTestServiceContext(t, &scriptedLLM{}, &staticResolver{})

	l := NewResetLogic(context.Background(), svcCtx)
	resp, err := l.Reset(&types.ResetRequest{SessionID: "never-existed"})
	require.NoError(t, err)
	require.True(t, resp.Reset)
}

func TestReset_RequiresSessionID(t *testing.T) {
	svcCtx := newTestServiceContext(t, &scriptedLLM{}, &staticResolver{})

	l := NewResetLogic(context.Background(), svcCtx)
	_, err := l.Reset(&types.ResetRequest{})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	svcCtx := newTestServiceContext(t, &scriptedLLM{}, &staticResolver{})

	l := NewHealthLogic(context.Background(), svcCtx)
	resp, err := l.Health()
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Status)
}
