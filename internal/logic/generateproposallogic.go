package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"azquote-api/internal/svc"
	"azquote-api/internal/types"
	"azquote-api/pkg/agent"
	"azquote-api/pkg/journal"
)

type GenerateProposalLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGenerateProposalLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GenerateProposalLogic {
	return &GenerateProposalLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GenerateProposal runs the quote pipeline against the session's gathered
// requirements and returns the proposal with its priced line items.
func (l *GenerateProposalLogic) GenerateProposal(req *types.ProposalRequest) (*types.ProposalResponse, error) {
	sess, ok := l.svcCtx.Sessions.Get(req.SessionID)
	if !ok {
		return nil, errors.New("proposal: unknown or expired session")
	}

	requirements := sess.Requirements
	if requirements == "" {
		requirements = agent.RestoreThread(sess.Messages).RequirementsTranscript()
	}
	if strings.TrimSpace(requirements) == "" {
		return nil, errors.New("proposal: session has no conversation yet")
	}

	result, err := l.svcCtx.Workflow.Run(l.ctx, requirements)
	l.journalRun(sess.ID, requirements, result, err)
	if err != nil {
		return nil, err
	}

	resp := &types.ProposalResponse{
		SessionID:    sess.ID,
		Proposal:     result.Proposal,
		TotalMonthly: result.Quote.TotalMonthly,
		Currency:     result.Quote.Currency,
	}
	for _, item := range result.Quote.Items {
		resp.Items = append(resp.Items, types.PricedLine{
			ServiceName:   item.ServiceName,
			SKU:           item.SKU,
			Region:        item.Region,
			Quantity:      item.Quantity,
			HoursPerMonth: item.HoursPerMonth,
			HourlyPrice:   item.HourlyPrice,
			MonthlyCost:   item.MonthlyCost,
			Note:          item.Note,
		})
	}
	return resp, nil
}

func (l *GenerateProposalLogic) journalRun(sessionID, requirements string, result *agent.Result, runErr error) {
	if l.svcCtx.Journal == nil {
		return
	}

	rec := &journal.RunRecord{
		SessionID:    sessionID,
		Requirements: requirements,
		Success:      runErr == nil,
	}
	if runErr != nil {
		rec.ErrorMessage = runErr.Error()
	}
	if result != nil {
		rec.BOMText = result.BOMText
		rec.ItemCount = len(result.Items)
		rec.TotalMonthly = result.Quote.TotalMonthly
		rec.Currency = result.Quote.Currency
		rec.Proposal = result.Proposal
	}
	if _, err := l.svcCtx.Journal.WriteRun(rec); err != nil {
		l.Errorf("proposal: journal write failed: %v", err)
	}
}
