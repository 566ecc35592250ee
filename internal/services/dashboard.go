package services

import (
	"context"

	"food-dataset-backend/internal/repository"
)

// DashboardStats summarizes the dataset for the admin dashboard.
type DashboardStats struct {
	TotalSubmissions int                      `json:"totalSubmissions"`
	TotalUsers       int                      `json:"totalUsers"`
	ByRegion         []repository.RegionCount `json:"byRegion"`
	ByDish           []repository.DishCount   `json:"byDish"`
}

// DashboardService aggregates counts for the admin dashboard.
type DashboardService struct {
	subRepo  *repository.SubmissionRepository
	userRepo *repository.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(subRepo *repository.SubmissionRepository, userRepo *repository.UserRepository) *DashboardService {
	return &DashboardService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Stats collects dashboard totals.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalSubs, err := s.subRepo.Count(ctx)
	if err != nil {
		return nil, Internal("Failed to count submissions", err)
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, Internal("Failed to count users", err)
	}
	byRegion, err := s.subRepo.CountByRegion(ctx)
	if err != nil {
		return nil, Internal("Failed to aggregate regions", err)
	}
	byDish, err := s.subRepo.CountByDish(ctx)
	if err != nil {
		return nil, Internal("Failed to aggregate dishes", err)
	}

	if byRegion == nil {
		byRegion = []repository.RegionCount{}
	}
	if byDish == nil {
		byDish = []repository.DishCount{}
	}
	return &DashboardStats{
		TotalSubmissions: totalSubs,
		TotalUsers:       totalUsers,
		ByRegion:         byRegion,
		ByDish:           byDish,
	}, nil
}
