package report

import (
	"context"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type ListActivitiesOutput struct {
	Items []models.AuditLog
	Total int64
	Page  int
	Limit int
}

// ListActivities is not cached.
type ListActivities struct {
	repo domain.Repository
}

func NewListActivities(repo domain.Repository) *ListActivities {
	return &ListActivities{repo: repo}
}

func (uc *ListActivities) Execute(
	ctx context.Context,
	f domain.ActivityFilter,
) (*ListActivitiesOutput, error) {

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultActivityLimit
	}
	if f.Limit > maxActivityLimit {
		f.Limit = maxActivityLimit
	}

	items, total, err := uc.repo.ListActivities(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ListActivitiesOutput{
		Items: items,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}
