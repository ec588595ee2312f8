package budgets

import (
	"context"
	"math/rand"
	"strings"

	"finledger-go/internal/domain/stream"
	"github.com/google/uuid"
)

var budgetColors = []string{"#10B981", "#3B82F6", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899"}

type Service struct {
	repo   Repository
	events stream.Publisher
}

func NewService(repo Repository, events stream.Publisher) *Service {
	if events == nil {
		events = stream.NopPublisher{}
	}
	return &Service{repo: repo, events: events}
}

func (s *Service) CreateBudget(ctx context.Context, input CreateBudgetInput) (*Budget, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	if !input.Limit.IsPositive() {
		return nil, ErrInvalidLimit
	}

	existing, err := s.repo.CountBudgetsByCategory(ctx, input.UserID, category, "")
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrBudgetExists
	}

	color := budgetColors[rand.Intn(len(budgetColors))]
	if input.Color != nil && strings.TrimSpace(*input.Color) != "" {
		color = strings.TrimSpace(*input.Color)
	}

	budget := Budget{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		Category: category,
		Limit:    input.Limit,
		Color:    color,
	}

	if err := s.repo.CreateBudget(ctx, &budget); err != nil {
		return nil, err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionBudgets, Action: stream.ActionCreated, EntityID: budget.ID, UserID: input.UserID})
	return &budget, nil
}

func (s *Service) UpdateBudget(ctx context.Context, input UpdateBudgetInput) (*Budget, error) {
	budget, err := s.repo.GetBudgetByID(ctx, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, ErrCategoryRequired
		}
		if !strings.EqualFold(category, budget.Category) {
			existing, err := s.repo.CountBudgetsByCategory(ctx, input.UserID, category, budget.ID)
			if err != nil {
				return nil, err
			}
			if existing > 0 {
				return nil, ErrBudgetExists
			}
		}
		budget.Category = category
	}
	if input.Limit != nil {
		if !input.Limit.IsPositive() {
			return nil, ErrInvalidLimit
		}
		budget.Limit = *input.Limit
	}
	if input.Color != nil && strings.TrimSpace(*input.Color) != "" {
		budget.Color = strings.TrimSpace(*input.Color)
	}

	if err := s.repo.UpdateBudget(ctx, budget); err != nil {
		return nil, err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionBudgets, Action: stream.ActionUpdated, EntityID: budget.ID, UserID: input.UserID})
	return budget, nil
}

func (s *Service) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	deleted, err := s.repo.DeleteBudget(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionBudgets, Action: stream.ActionDeleted, EntityID: budgetID, UserID: userID})
	return nil
}

// ListBudgets returns each budget with its derived spend.
func (s *Service) ListBudgets(ctx context.Context, userID string) ([]BudgetWithSpent, error) {
	items, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]BudgetWithSpent, 0, len(items))
	for _, budget := range items {
		spent, err := s.repo.SumExpensesByCategory(ctx, userID, budget.Category)
		if err != nil {
			return nil, err
		}
		result = append(result, BudgetWithSpent{Budget: budget, Spent: spent})
	}

	return result, nil
}
