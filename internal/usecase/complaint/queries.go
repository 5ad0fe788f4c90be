package complaint

import (
	"context"
	"sort"
	"time"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
)

// DefaultRecentLimit и DefaultRecentWindow параметры ленты свежих обращений.
const (
	DefaultRecentLimit  = 10
	DefaultRecentWindow = 30 * 24 * time.Hour
)

// FallbackCategories показываются, пока в базе нет ни одной категории.
var FallbackCategories = []string{"Road", "Water", "Electricity", "Sanitation", "Garbage"}

type GetComplaintUseCase struct {
	deps Deps
}

func NewGetComplaintUseCase(deps Deps) *GetComplaintUseCase {
	return &GetComplaintUseCase{deps: deps}
}

func (uc *GetComplaintUseCase) Execute(ctx context.Context, id int64) (*entity.Complaint, error) {
	return uc.deps.Repo.FindByID(ctx, id)
}

type RecentComplaintsUseCase struct {
	deps   Deps
	window time.Duration
}

func NewRecentComplaintsUseCase(deps Deps, window time.Duration) *RecentComplaintsUseCase {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &RecentComplaintsUseCase{deps: deps, window: window}
}

// Execute обращения за последние window, от новых к старым. limit < 1 означает
// значение по умолчанию, limit = -1 снимает ограничение.
func (uc *RecentComplaintsUseCase) Execute(ctx context.Context, limit int) ([]*entity.Complaint, error) {
	all, err := uc.deps.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit == 0 || limit < -1 {
		limit = DefaultRecentLimit
	}

	since := uc.deps.now().Add(-uc.window)
	out := make([]*entity.Complaint, 0, DefaultRecentLimit)
	for _, c := range all {
		if c == nil || c.CreatedAt.Before(since) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type CategoriesUseCase struct {
	deps Deps
}

func NewCategoriesUseCase(deps Deps) *CategoriesUseCase {
	return &CategoriesUseCase{deps: deps}
}

// Execute отсортированный список категорий, встречающихся в обращениях.
func (uc *CategoriesUseCase) Execute(ctx context.Context) ([]string, error) {
	all, err := uc.deps.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, c := range all {
		if c != nil {
			seen[c.CategoryOrDefault()] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return append([]string(nil), FallbackCategories...), nil
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
