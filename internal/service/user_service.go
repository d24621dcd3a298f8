package service

import (
	"context"
	"encoding/json"
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"
	"family_learn_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = time.Minute

type UserService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{UserRepo: userRepo, Redis: rdb}
}

func (s *UserService) GetByID(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAll() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

// GetTopUsers serves the points leaderboard, cached in Redis for a minute.
// The leaderboard is read on every dashboard load but only shifts when
// someone passes a test, so a short TTL takes the read load off MySQL.
func (s *UserService) GetTopUsers(ctx context.Context, limit int) ([]model.User, error) {
	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var users []model.User
			if jsonErr := json.Unmarshal([]byte(cached), &users); jsonErr == nil {
				return users, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByPoints(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(users); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return users, nil
}

// UpdatePoints adds reward points to the user's running total. Points only
// accumulate; there is no code path that subtracts them.
func (s *UserService) UpdatePoints(userID uint, points int) error {
	return s.UserRepo.IncrementPoints(userID, points)
}

type ProfileUpdate struct {
	Username *string `json:"username"`
	ImageURL *string `json:"imageUrl"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.ImageURL != nil {
		user.ImageURL = *update.ImageURL
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) MarkVerified(userID uint) error {
	return s.UserRepo.MarkVerified(userID)
}
