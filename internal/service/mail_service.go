package service

import (
	"family_learn_backend/internal/config"
	"family_learn_backend/internal/model"
	"family_learn_backend/pkg/logger"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// MailService sends transactional mail through SendGrid. Delivery is
// fire-and-forget: a mail failure never fails the request that triggered it.
type MailService struct {
	Cfg    *config.MailConfig
	client *sendgrid.Client
}

func NewMailService(cfg *config.MailConfig) *MailService {
	return &MailService{
		Cfg:    cfg,
		client: sendgrid.NewSendClient(cfg.SendGridKey),
	}
}

func (s *MailService) SendVerificationMail(user *model.User, token string) {
	link := fmt.Sprintf("%s?token=%s", s.Cfg.VerifyURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to the family learning platform! Please confirm your email address:</p><p><a href=%q>Verify my account</a></p>",
		user.Username, link,
	)
	s.send(user, "Confirm your account", body)
}

func (s *MailService) SendAchievementMail(user *model.User, achievement model.Achievement) {
	body := fmt.Sprintf(
		"<p>Congratulations %s!</p><p>You earned the <b>%s</b> achievement: %s</p>",
		user.Username, achievement.Title, achievement.Description,
	)
	s.send(user, "You earned an achievement", body)
}

func (s *MailService) send(user *model.User, subject, htmlBody string) {
	if s.Cfg.SendGridKey == "" {
		logger.Log.Debug("mail delivery skipped, no SendGrid key configured",
			zap.String("subject", subject))
		return
	}

	from := mail.NewEmail(s.Cfg.FromName, s.Cfg.FromAddress)
	to := mail.NewEmail(user.Username, user.Email)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	go func() {
		resp, err := s.client.Send(message)
		if err != nil {
			logger.Log.Error("mail delivery failed",
				zap.String("to", user.Email),
				zap.String("subject", subject),
				zap.Error(err))
			return
		}
		if resp.StatusCode >= 400 {
			logger.Log.Error("mail rejected by SendGrid",
				zap.String("to", user.Email),
				zap.Int("status", resp.StatusCode))
		}
	}()
}
