package service

import (
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"
	"family_learn_backend/pkg/logger"
	"family_learn_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AchievementService fronts the static achievement catalog and the grant
// store. The catalog is read once at startup into an immutable map; the rows
// never change while the process runs.
type AchievementService struct {
	Repo     *repository.AchievementRepository
	UserRepo *repository.UserRepository
	MailSvc  *MailService
	catalog  map[model.AchievementCode]model.Achievement
	ordered  []model.Achievement
}

func NewAchievementService(repo *repository.AchievementRepository, userRepo *repository.UserRepository, mailSvc *MailService) (*AchievementService, error) {
	rows, err := repo.FindAll()
	if err != nil {
		return nil, err
	}

	catalog := make(map[model.AchievementCode]model.Achievement, len(rows))
	for _, a := range rows {
		catalog[a.Code] = a
	}

	return &AchievementService{
		Repo:     repo,
		UserRepo: userRepo,
		MailSvc:  mailSvc,
		catalog:  catalog,
		ordered:  rows,
	}, nil
}

// Catalog returns the full achievement list in stable order.
func (s *AchievementService) Catalog() []model.Achievement {
	return s.ordered
}

// Grant is idempotent: re-granting a held achievement is a no-op, never an
// error. The underlying unique-pair insert swallows the duplicate.
func (s *AchievementService) Grant(userID uint, code model.AchievementCode) error {
	achievement, ok := s.catalog[code]
	if !ok {
		return util.ErrAchievementUnknown
	}

	granted, err := s.Repo.Grant(userID, achievement.ID)
	if err != nil {
		return err
	}

	if granted {
		monitoring.AchievementGrants.WithLabelValues(string(code)).Inc()
		logger.Log.Info("achievement granted",
			zap.Uint("userId", userID),
			zap.String("code", string(code)))

		if s.MailSvc != nil && s.UserRepo != nil {
			if user, err := s.UserRepo.FindByID(userID); err == nil {
				s.MailSvc.SendAchievementMail(user, achievement)
			}
		}
	}

	return nil
}

func (s *AchievementService) ListGranted(userID uint) ([]model.Achievement, error) {
	return s.Repo.FindGrantedByUser(userID)
}
