package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/middleware"
)

// weightKeys and scheduleKeys enumerate the keys PutSetting accepts, with the
// parser each value must satisfy.
var weightKeys = map[string]bool{
	domain.SettingWeightSale:              true,
	domain.SettingWeightReferralFocus:     true,
	domain.SettingWeightReferralSecondary: true,
	domain.SettingWeightReferralOther:     true,
	domain.SettingWeightPlaqueFocus:       true,
	domain.SettingWeightPlaqueSecondary:   true,
	domain.SettingWeightPlaqueOther:       true,
}

var scheduleKeys = map[string]bool{
	domain.SettingOpeningDay:    true,
	domain.SettingOpeningHour:   true,
	domain.SettingStaggerLimit:  true,
	domain.SettingRestWeekday:   true,
	domain.SettingShiftCapacity: true,
}

// SettingService manages the administrative configuration store.
type SettingService struct {
	settingRepo portsrepo.SettingRepository
	userRepo    portsrepo.UserRepository
	audit       portssvc.AuditSvcFacade
}

// NewSettingService creates a new SettingService.
func NewSettingService(settingRepo portsrepo.SettingRepository, userRepo portsrepo.UserRepository, audit portssvc.AuditSvcFacade) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		userRepo:    userRepo,
		audit:       audit,
	}
}

var _ portssvc.SettingSvcFacade = (*SettingService)(nil)

// ListSettings lists all configuration entries. Manager-only.
func (s *SettingService) ListSettings(ctx context.Context, actorID string) ([]domain.Setting, error) {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	return s.settingRepo.ListSettings(ctx)
}

// PutSetting creates or replaces one configuration entry. Admin-only.
func (s *SettingService) PutSetting(ctx context.Context, actorID, key, value, originIP string) error {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if actor.Type != domain.UserTypeAdmin {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	switch {
	case weightKeys[key]:
		parsed, err := decimal.NewFromString(value)
		if err != nil || parsed.IsNegative() {
			return fmt.Errorf("%w: %s must be a non-negative decimal", apperrors.ErrValidation, key)
		}
	case scheduleKeys[key]:
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", apperrors.ErrValidation, key)
		}
	default:
		return fmt.Errorf("%w: unknown setting key %q", apperrors.ErrValidation, key)
	}

	now := time.Now()
	setting := domain.Setting{
		Key:   key,
		Value: value,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.settingRepo.SaveSetting(ctx, setting); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	s.audit.Record(ctx, actorID, "setting.put", "settings", key, map[string]string{"value": value}, originIP)
	return nil
}

// WeightTable loads the score weights, falling back to the default per key
// that is absent or unparseable.
func (s *SettingService) WeightTable(ctx context.Context) (domain.WeightTable, error) {
	table := domain.DefaultWeightTable()

	assign := map[string]*decimal.Decimal{
		domain.SettingWeightSale:              &table.Sale,
		domain.SettingWeightReferralFocus:     &table.ReferralFocus,
		domain.SettingWeightReferralSecondary: &table.ReferralSecondary,
		domain.SettingWeightReferralOther:     &table.ReferralOther,
		domain.SettingWeightPlaqueFocus:       &table.PlaqueFocus,
		domain.SettingWeightPlaqueSecondary:   &table.PlaqueSecondary,
		domain.SettingWeightPlaqueOther:       &table.PlaqueOther,
	}
	for key, target := range assign {
		value, err := s.settingValue(ctx, key)
		if err != nil || value == "" {
			if err != nil {
				return domain.WeightTable{}, err
			}
			continue
		}
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Ignoring unparseable weight setting", slog.String("key", key), slog.String("value", value))
			continue
		}
		*target = parsed
	}
	return table, nil
}

// SchedulePolicy loads the claim-window policy, falling back to the default
// per key that is absent or unparseable.
func (s *SettingService) SchedulePolicy(ctx context.Context) (domain.SchedulePolicy, error) {
	policy := domain.DefaultSchedulePolicy()

	assign := map[string]*int{
		domain.SettingOpeningDay:    &policy.OpeningDay,
		domain.SettingOpeningHour:   &policy.OpeningHour,
		domain.SettingStaggerLimit:  &policy.StaggerLimit,
		domain.SettingRestWeekday:   &policy.RestWeekday,
		domain.SettingShiftCapacity: &policy.ShiftCapacity,
	}
	for key, target := range assign {
		value, err := s.settingValue(ctx, key)
		if err != nil || value == "" {
			if err != nil {
				return domain.SchedulePolicy{}, err
			}
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Ignoring unparseable schedule setting", slog.String("key", key), slog.String("value", value))
			continue
		}
		*target = parsed
	}
	return policy, nil
}

// settingValue fetches one setting value, mapping absence to "".
func (s *SettingService) settingValue(ctx context.Context, key string) (string, error) {
	setting, err := s.settingRepo.FindSetting(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return setting.Value, nil
}
