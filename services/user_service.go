package services

import (
	"context"
	"fmt"

	"backend/models"
	"backend/repositories"
	"backend/utils"

	"github.com/go-playground/validator/v10"
)

// TargetRequest carries the biometrics for the calorie target
// calculation. Validated at the boundary, before any computation.
type TargetRequest struct {
	WeightKg           float64 `json:"weight_kg" validate:"required,gt=0"`
	GoalWeightKg       float64 `json:"goal_weight_kg" validate:"required,gt=0"`
	HeightCm           float64 `json:"height_cm" validate:"required,gt=0"`
	AgeYears           int     `json:"age_years" validate:"required,gt=0"`
	Gender             string  `json:"gender" validate:"required,oneof=male female"`
	ActivityMultiplier float64 `json:"activity_multiplier" validate:"required,gte=1.2,lte=1.9"`
	TimePeriodWeeks    float64 `json:"time_period_weeks" validate:"required,gt=0"`
}

type RegisterRequest struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`

	TargetRequest
}

type UserService struct {
	users    repositories.UserRepository
	validate *validator.Validate
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{
		users:    users,
		validate: validator.New(),
	}
}

// ComputeCalorieTarget is the pure calculation: biometrics in, daily
// kcal budget out. No side effects.
func (s *UserService) ComputeCalorieTarget(req TargetRequest) (int, error) {
	if err := s.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	target, err := utils.CalorieTarget(
		req.WeightKg, req.GoalWeightKg, req.HeightCm,
		req.AgeYears, req.Gender,
		req.ActivityMultiplier, req.TimePeriodWeeks,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return target, nil
}

// Register computes the user's calorie target from the supplied
// biometrics and persists the account. The target is immutable after
// this point unless the user re-registers.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be provided together", ErrInvalidInput)
	}

	target, err := s.ComputeCalorieTarget(req.TargetRequest)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}

	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		CalorieTarget: target,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

func (s *UserService) SetCalorieTarget(ctx context.Context, id uint, target int) error {
	if target <= 0 {
		return fmt.Errorf("%w: calorie target must be positive", ErrInvalidInput)
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.users.SetCalorieTarget(ctx, id, target); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
