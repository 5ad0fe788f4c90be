package dashboard

import (
	"context"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/filter"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/profile"
)

// Summary данные главной страницы дашборда.
type Summary struct {
	Complaints *complaint.Stats
	Users      *profile.Stats
	Recent     filter.Page[*entity.Complaint]
}

type complaintStats interface {
	Execute(ctx context.Context) (*complaint.Stats, error)
}

type userStats interface {
	Execute(ctx context.Context) (*profile.Stats, error)
}

type recentComplaints interface {
	Execute(ctx context.Context, limit int) ([]*entity.Complaint, error)
}

type SummaryUseCase struct {
	complaints complaintStats
	users      userStats
	recent     recentComplaints
	perPage    int
}

func NewSummaryUseCase(complaints complaintStats, users userStats, recent recentComplaints, perPage int) *SummaryUseCase {
	if perPage < 1 {
		perPage = filter.SummaryPerPage
	}
	return &SummaryUseCase{complaints: complaints, users: users, recent: recent, perPage: perPage}
}

// Execute собирает сводку. Таблица свежих обращений листается по perPage.
func (uc *SummaryUseCase) Execute(ctx context.Context, page int) (*Summary, error) {
	cs, err := uc.complaints.Execute(ctx)
	if err != nil {
		return nil, err
	}
	us, err := uc.users.Execute(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.recent.Execute(ctx, -1)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Complaints: cs,
		Users:      us,
		Recent:     filter.Paginate(recent, page, uc.perPage),
	}, nil
}
