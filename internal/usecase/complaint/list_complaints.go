package complaint

import (
	"context"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/filter"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

type ListInput struct {
	Criteria filter.Criteria
	Page     int
	PerPage  int
	// CriteriaToken отпечаток критериев, с которыми клиент получил прошлую страницу.
	CriteriaToken string
}

type ListResult struct {
	Page          filter.Page[*entity.Complaint]
	CriteriaToken string
	Window        []int
}

type ListComplaintsUseCase struct {
	deps    Deps
	perPage int
}

// NewListComplaintsUseCase perPage размер страницы по умолчанию.
func NewListComplaintsUseCase(deps Deps, perPage int) *ListComplaintsUseCase {
	if perPage < 1 {
		perPage = filter.ComplaintsPerPage
	}
	return &ListComplaintsUseCase{deps: deps, perPage: perPage}
}

func (uc *ListComplaintsUseCase) Execute(ctx context.Context, in ListInput) (*ListResult, error) {
	if err := validation.ValidateSearchTerm(in.Criteria.Search); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	all, err := uc.deps.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	perPage := in.PerPage
	if perPage < 1 {
		perPage = uc.perPage
	}
	page := filter.ResolvePage(in.Criteria, in.Page, in.CriteriaToken)

	res := filter.Complaints(all, in.Criteria, page, perPage)
	return &ListResult{
		Page:          res,
		CriteriaToken: in.Criteria.Fingerprint(),
		Window:        filter.Window(res.Page, res.TotalPages, 5),
	}, nil
}
