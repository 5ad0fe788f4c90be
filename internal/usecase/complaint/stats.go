package complaint

import (
	"context"
	"sort"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
)

const dailySeriesDays = 7

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats сводка по обращениям для карточек и графиков дашборда.
type Stats struct {
	Total      int            `json:"total"`
	Assessed   int            `json:"assessed"`
	InProgress int            `json:"in_progress"`
	Resolved   int            `json:"resolved"`
	Categories map[string]int `json:"categories"`
	Priorities map[string]int `json:"priorities"`
	// Monthly ключ YYYY-MM.
	Monthly map[string]int `json:"monthly_trends"`
	// Daily последние семь дней, в которые были обращения, по возрастанию.
	Daily []DailyCount `json:"daily"`
}

type StatsUseCase struct {
	deps Deps
}

func NewStatsUseCase(deps Deps) *StatsUseCase {
	return &StatsUseCase{deps: deps}
}

func (uc *StatsUseCase) Execute(ctx context.Context) (*Stats, error) {
	all, err := uc.deps.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(all), nil
}

// ComputeStats считает сводку по готовому набору обращений.
func ComputeStats(items []*entity.Complaint) *Stats {
	s := &Stats{
		Categories: make(map[string]int),
		Priorities: make(map[string]int),
		Monthly:    make(map[string]int),
		Daily:      []DailyCount{},
	}

	perDay := make(map[string]int)
	for _, c := range items {
		if c == nil {
			continue
		}
		s.Total++
		switch valueobject.NormalizeComplaintStatus(string(c.Status)) {
		case valueobject.ComplaintStatusAssessed:
			s.Assessed++
		case valueobject.ComplaintStatusInProgress:
			s.InProgress++
		case valueobject.ComplaintStatusResolved:
			s.Resolved++
		}

		s.Categories[c.CategoryOrDefault()]++
		if c.Priority != "" {
			s.Priorities[string(c.Priority)]++
		}
		if !c.CreatedAt.IsZero() {
			created := c.CreatedAt.UTC()
			s.Monthly[created.Format("2006-01")]++
			perDay[created.Format("2006-01-02")]++
		}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > dailySeriesDays {
		days = days[len(days)-dailySeriesDays:]
	}
	for _, day := range days {
		s.Daily = append(s.Daily, DailyCount{Date: day, Count: perDay[day]})
	}

	return s
}
