package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// Sender delivers one text message; satisfied by the solapi and twilio clients
type Sender interface {
	Send(ctx context.Context, to, text string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service sends best-effort booking messages to customers. Failures are
// logged and never returned.
type Service struct {
	sender    Sender
	enabled   bool
	storeName string
	timeout   time.Duration
	logger    Logger
}

// NewService creates the booking notification service
func NewService(sender Sender, enabled bool, storeName string, timeout time.Duration, logger Logger) *Service {
	return &Service{
		sender:    sender,
		enabled:   enabled && sender != nil,
		storeName: storeName,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *Service) BookingCreated(ctx context.Context, b *domain.Booking) {
	s.send(ctx, "created", b, fmt.Sprintf("[%s] %s님, %s 예약 요청이 접수되었습니다. 확정 후 다시 안내드리겠습니다.",
		s.storeName, b.CustomerName, when(b)))
}

func (s *Service) BookingConfirmed(ctx context.Context, b *domain.Booking) {
	s.send(ctx, "confirmed", b, fmt.Sprintf("[%s] %s님, %s 예약이 확정되었습니다.",
		s.storeName, b.CustomerName, when(b)))
}

func (s *Service) BookingRescheduled(ctx context.Context, b *domain.Booking) {
	s.send(ctx, "rescheduled", b, fmt.Sprintf("[%s] %s님, 예약이 %s(으)로 변경되었습니다.",
		s.storeName, b.CustomerName, when(b)))
}

func (s *Service) BookingCancelled(ctx context.Context, b *domain.Booking) {
	s.send(ctx, "cancelled", b, fmt.Sprintf("[%s] %s님, %s 예약이 취소되었습니다.",
		s.storeName, b.CustomerName, when(b)))
}

func (s *Service) send(ctx context.Context, kind string, b *domain.Booking, text string) {
	if !s.enabled || b == nil {
		return
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	id, err := s.sender.Send(ctx, b.CustomerPhone, text)
	if err != nil {
		s.logger.Warn("Notifications: booking %s id=%d: %v", kind, b.ID, err)
		return
	}
	s.logger.Info("Notifications: booking %s id=%d sent (%s)", kind, b.ID, id)
}

func when(b *domain.Booking) string {
	return fmt.Sprintf("%s %s", b.BookingDate.Format(domain.DateFormat), b.StartTime)
}
