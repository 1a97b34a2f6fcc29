package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	campaignRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/campaign"
	"github.com/whalechillz/mas-win-sub025/internal/service/campaigns/models"
)

const maxLMSBytes = 2000

// Service manages campaign drafts. Sending and reconciliation live in their own use cases.
type Service struct {
	repo      CampaignRepository
	txManager TransactionManager
	logger    Logger
}

// NewService creates the campaign service
func NewService(repo CampaignRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{repo: repo, txManager: txManager, logger: logger}
}

// Create stores a draft, or a scheduled campaign when ScheduledAt is set
func (s *Service) Create(ctx context.Context, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	m := &domain.CampaignMessage{
		MessageText:      req.MessageText,
		RecipientNumbers: normalizeNumbers(req.RecipientNumbers),
		ImageURL:         blankToNil(req.ImageURL),
		ShortLink:        blankToNil(req.ShortLink),
		ScheduledAt:      req.ScheduledAt,
		Note:             req.Note,
		Status:           domain.CampaignDraft,
	}
	if m.ScheduledAt != nil {
		m.Status = domain.CampaignScheduled
	}

	msgType, ok := domain.NormalizeMessageType(req.MessageType)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported message type %q", ErrInvalidInput, req.MessageType)
	}
	m.MessageType = msgType

	if err := validateContent(m); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: campaign id=%d type=%s recipients=%d status=%s",
		created.ID, created.MessageType, len(created.RecipientNumbers), created.Status)
	return models.FromDomainCampaign(created), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.CampaignResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}
	return models.FromDomainCampaign(m), nil
}

func (s *Service) List(ctx context.Context, req *models.ListCampaignsRequest) (*models.CampaignListResponse, error) {
	filter := domain.CampaignFilter{Limit: req.Limit, Offset: req.Offset}
	if req.Status != nil {
		status, ok := domain.ParseCampaignStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Statuses = []domain.CampaignStatus{status}
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCampaignList(list), nil
}

// Update edits a campaign that has not been handed to the gateway yet
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	var updated *domain.CampaignMessage

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		m, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}
		if !m.IsEditable() {
			s.logger.Warn("Update: campaign id=%d is %s with %d groups", id, m.Status, len(m.GroupIDs))
			return ErrNotEditable
		}

		if err := applyUpdate(m, req); err != nil {
			return err
		}
		if err := validateContent(m); err != nil {
			return err
		}

		if err := s.repo.Update(txCtx, m); err != nil {
			return s.mapRepoError("Update", id, err)
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: campaign id=%d status=%s", id, updated.Status)
	return models.FromDomainCampaign(updated), nil
}

func applyUpdate(m *domain.CampaignMessage, req *models.UpdateCampaignRequest) error {
	if req.MessageText != nil {
		m.MessageText = *req.MessageText
	}
	if req.MessageType != nil {
		t, ok := domain.NormalizeMessageType(*req.MessageType)
		if !ok {
			return fmt.Errorf("%w: unsupported message type %q", ErrInvalidInput, *req.MessageType)
		}
		m.MessageType = t
	}
	if req.RecipientNumbers != nil {
		m.RecipientNumbers = normalizeNumbers(*req.RecipientNumbers)
	}
	if req.ImageURL != nil {
		m.ImageURL = blankToNil(req.ImageURL)
	}
	if req.ShortLink != nil {
		m.ShortLink = blankToNil(req.ShortLink)
	}
	if req.Note != nil {
		m.Note = req.Note
	}

	switch {
	case req.ClearSchedule:
		m.ScheduledAt = nil
		m.Status = domain.CampaignDraft
	case req.ScheduledAt != nil:
		m.ScheduledAt = req.ScheduledAt
		m.Status = domain.CampaignScheduled
	}
	return nil
}

func validateContent(m *domain.CampaignMessage) error {
	if strings.TrimSpace(m.MessageText) == "" {
		return fmt.Errorf("%w: message text is required", ErrInvalidInput)
	}

	size := domain.MessageBytes(m.ComposedText())
	switch m.MessageType {
	case domain.MessageSMS:
		if size > domain.SMSMaxBytes {
			return fmt.Errorf("%w: SMS text is %d bytes, limit is %d; use LMS", ErrInvalidInput, size, domain.SMSMaxBytes)
		}
	case domain.MessageLMS, domain.MessageMMS:
		if size > maxLMSBytes {
			return fmt.Errorf("%w: text is %d bytes, limit is %d", ErrInvalidInput, size, maxLMSBytes)
		}
	}
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, campaignRepo.ErrCampaignNotFound) {
		s.logger.Warn("%s: campaign id=%d not found", op, id)
		return ErrCampaignNotFound
	}
	s.logger.Error("%s: repository error for campaign id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// normalizeNumbers strips separators and drops blanks and duplicates. Invalid
// numbers are kept so the admin sees them; dispatch skips them.
func normalizeNumbers(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		n := domain.NormalizePhone(r)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
