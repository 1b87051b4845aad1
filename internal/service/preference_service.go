package service

import (
	"context"

	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/internal/repository/contract"
)

type IPreferenceService interface {
	Get(ctx context.Context, userKey string) (*entity.Preferences, error)
	Update(ctx context.Context, userKey string, request *dto.UpdatePreferencesRequest) (*entity.Preferences, error)
}

type preferenceService struct {
	repo contract.PreferenceRepository
}

func NewPreferenceService(repo contract.PreferenceRepository) IPreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) Get(ctx context.Context, userKey string) (*entity.Preferences, error) {
	return s.repo.Load(ctx, userKey), nil
}

// Update applies only the fields present in the request.
func (s *preferenceService) Update(ctx context.Context, userKey string, request *dto.UpdatePreferencesRequest) (*entity.Preferences, error) {
	prefs := s.repo.Load(ctx, userKey)
	if request.Theme != nil {
		prefs.Theme = *request.Theme
	}
	if request.ActiveMode != nil {
		prefs.ActiveMode = *request.ActiveMode
	}
	if request.SimulationMode != nil {
		prefs.SimulationMode = *request.SimulationMode
	}

	if err := s.repo.Save(ctx, userKey, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
