package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/event-registration-api/internal/models"
)

// DiscordNotifier posts a summary of every submission to the organisers'
// channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordNotifierFromToken builds the session from a bot token. Messages
// are sent through the REST API, so the gateway connection is never opened.
func NewDiscordNotifierFromToken(token, channelID string) (*DiscordNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return NewDiscordNotifier(session, channelID), nil
}

func (n *DiscordNotifier) NotifySubmission(ctx context.Context, sub models.Submission, res models.SubmissionResult) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, FormatSubmission(sub, res), discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("failed to send discord message", "submission_id", res.SubmissionID, "error", err)
		return err
	}

	return nil
}

// FormatSubmission renders the channel message for a submission.
func FormatSubmission(sub models.Submission, res models.SubmissionResult) string {
	header := "🎉 **New Registration**"
	switch res.Status() {
	case models.StatusPartialSuccess:
		header = "⚠️ **Partially Saved Registration**"
	case models.StatusError:
		header = "❌ **Failed Registration**"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n**Event:** %s\n**Booking:** %s / %s\n**Saved:** %d of %d",
		header, sub.Event, sub.ContactEmail, sub.ContactNumber, res.Saved, res.Total)

	for _, p := range res.Participants {
		mark := "✅"
		if !p.Saved {
			mark = "❌"
		}
		fmt.Fprintf(&b, "\n%s %s (%d dates)", mark, p.Name, p.PreferencesSaved)
	}

	return b.String()
}
