package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	conversationRepo "agendabot/database/repository/conversation"
	settingsRepo "agendabot/database/repository/settings"
	"agendabot/models"
	"agendabot/services/schedule"
)

const (
	// Contact recorded for bookings made through the chat channel.
	chatContact = "WhatsApp"

	// Substituted when the engine rejected the directive's slot. The
	// generator's text is discarded so it can never claim success.
	slotUnavailableReply = "⚠️ That time is no longer available. Would another time work?"

	// Substituted when the text generator itself failed.
	generatorDownReply = "Sorry, I'm having trouble answering right now. Please try again in a moment."

	historyLimit = 10
)

// DefaultChatService wires the dedup guard, the ledger, the text generator
// and the scheduling engine into the inbound-message pipeline.
type DefaultChatService struct {
	Guard     *DedupGuard
	Ledger    conversationRepo.ConversationRepository
	Scheduler schedule.SchedulingService
	Settings  settingsRepo.Typed
	Generator TextGenerator
	Reminders ReminderScheduler // optional
}

func (s *DefaultChatService) HandleInbound(ctx context.Context, msg models.InboundMessage) (*models.ChatOutcome, error) {
	if !s.Guard.Admit(msg.ClientName, msg.Content, msg.SelfEcho) {
		return &models.ChatOutcome{Duplicate: true}, nil
	}

	if skip := s.shouldSkip(ctx, msg.ClientName); skip {
		// Release the claim so the message can still be handled once the bot
		// is re-enabled or the client leaves the ignore list.
		s.Guard.Forget(msg.ClientName, msg.Content)
		return &models.ChatOutcome{Skipped: true}, nil
	}

	if err := s.Ledger.AppendMessage(ctx, msg.ClientName, msg.Content, false); err != nil {
		return nil, fmt.Errorf("append client message: %w", err)
	}

	reply, err := s.Generator.GenerateReply(ctx, s.buildContext(ctx, msg))
	if err != nil {
		zap.L().Warn("text generator failed", zap.String("client", msg.ClientName), zap.Error(err))
		reply = generatorDownReply
	}

	outcome, err := s.applyDirective(ctx, msg.ClientName, reply)
	if err != nil {
		return nil, err
	}

	if err := s.Ledger.AppendMessage(ctx, msg.ClientName, outcome.Reply, true); err != nil {
		return nil, fmt.Errorf("append agent reply: %w", err)
	}
	return outcome, nil
}

// MarkDelivered refreshes the dedup fingerprint once the transport confirms
// delivery.
func (s *DefaultChatService) MarkDelivered(clientName, content string) {
	s.Guard.MarkProcessed(clientName, content)
}

func (s *DefaultChatService) shouldSkip(ctx context.Context, clientName string) bool {
	if !s.Settings.BotEnabled(ctx) {
		return true
	}
	key := models.ClientKey(clientName)
	for _, ignored := range s.Settings.IgnoredClients(ctx) {
		if models.ClientKey(ignored) == key {
			zap.L().Debug("ignored client", zap.String("client", clientName))
			return true
		}
	}
	return false
}

// buildContext gathers the situational input for the generator. These are
// non-critical reads: failures degrade to empty context and log.
func (s *DefaultChatService) buildContext(ctx context.Context, msg models.InboundMessage) models.ReplyContext {
	now := time.Now()
	today := now.Format("2006-01-02")

	available, err := s.Scheduler.AvailableSlots(ctx, today)
	if err != nil {
		zap.L().Warn("availability lookup failed", zap.Error(err))
		available = nil
	}
	history, err := s.Ledger.History(ctx, msg.ClientName, historyLimit)
	if err != nil {
		zap.L().Warn("history lookup failed", zap.String("client", msg.ClientName), zap.Error(err))
		history = nil
	}

	return models.ReplyContext{
		BusinessName:   s.Settings.BusinessName(ctx),
		Instructions:   s.Settings.Instructions(ctx),
		ClientName:     msg.ClientName,
		Weekday:        now.Weekday().String(),
		Today:          today,
		Now:            now.Format("15:04"),
		AvailableToday: available,
		History:        history,
		Message:        msg.Content,
	}
}

// applyDirective scans the generated reply for a booking directive and
// rewrites the reply according to the engine's verdict.
func (s *DefaultChatService) applyDirective(ctx context.Context, clientName, reply string) (*models.ChatOutcome, error) {
	directive, stripped, ok := ExtractDirective(reply)
	if !ok {
		return &models.ChatOutcome{Reply: stripped}, nil
	}

	result, err := s.Scheduler.RequestBooking(ctx, directive.Date, directive.Slot, clientName, chatContact)
	if schedule.IsSlotTaken(err) {
		return &models.ChatOutcome{Reply: slotUnavailableReply}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("book from directive: %w", err)
	}

	confirmed := fmt.Sprintf("%s ✅ Booking confirmed for %s at %s!", stripped, directive.Date, directive.Slot)
	outcome := &models.ChatOutcome{
		Reply:  confirmed,
		Booked: true,
		Date:   directive.Date,
		Slot:   directive.Slot,
	}

	if err := s.Ledger.MarkBookingConfirmed(ctx, clientName); err != nil {
		zap.L().Warn("failed to close conversation", zap.String("client", clientName), zap.Error(err))
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *result.Booking); err != nil {
			zap.L().Warn("failed to schedule reminder", zap.String("booking", result.Booking.ID), zap.Error(err))
		}
	}
	return outcome, nil
}
