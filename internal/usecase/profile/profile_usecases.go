package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/filter"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

type ListInput struct {
	Criteria      filter.Criteria
	Page          int
	PerPage       int
	CriteriaToken string
}

type ListResult struct {
	Page          filter.Page[*entity.Profile]
	CriteriaToken string
	Window        []int
}

type ListProfilesUseCase struct {
	deps    Deps
	perPage int
}

func NewListProfilesUseCase(deps Deps, perPage int) *ListProfilesUseCase {
	if perPage < 1 {
		perPage = filter.UsersPerPage
	}
	return &ListProfilesUseCase{deps: deps, perPage: perPage}
}

func (uc *ListProfilesUseCase) Execute(ctx context.Context, in ListInput) (*ListResult, error) {
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

	res := filter.Profiles(all, in.Criteria, page, perPage)
	return &ListResult{
		Page:          res,
		CriteriaToken: in.Criteria.Fingerprint(),
		Window:        filter.Window(res.Page, res.TotalPages, 5),
	}, nil
}

type GetProfileUseCase struct {
	deps Deps
}

func NewGetProfileUseCase(deps Deps) *GetProfileUseCase {
	return &GetProfileUseCase{deps: deps}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return uc.deps.Repo.FindByID(ctx, id)
}

type UpdateProfileInput struct {
	Username *string
	FullName *string
}

type UpdateProfileUseCase struct {
	deps Deps
}

func NewUpdateProfileUseCase(deps Deps) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{deps: deps}
}

// Execute меняет username и полное имя. Пустой ввод ничего не записывает.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*entity.Profile, error) {
	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.FullName != nil {
		if err := validation.ValidateFullName(*in.FullName); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	p, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username == nil && in.FullName == nil {
		return p, nil
	}

	if err := p.UpdateIdentity(in.Username, in.FullName, uc.deps.now()); err != nil {
		return nil, err
	}
	if err := uc.deps.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.deps.invalidate()

	return uc.deps.Repo.FindByID(ctx, id)
}

// StatusChange полезная нагрузка события profile.status_changed.
type StatusChange struct {
	Profile  *entity.Profile        `json:"profile"`
	Previous valueobject.UserStatus `json:"previous_status"`
}

type SetUserStatusUseCase struct {
	deps Deps
}

func NewSetUserStatusUseCase(deps Deps) *SetUserStatusUseCase {
	return &SetUserStatusUseCase{deps: deps}
}

func (uc *SetUserStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status string) (*entity.Profile, error) {
	next, err := valueobject.NewUserStatus(status)
	if err != nil {
		return nil, err
	}

	p, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := p.Status

	if err := p.SetStatus(next, uc.deps.now()); err != nil {
		return nil, err
	}
	return persistStatus(ctx, uc.deps, p, previous)
}

type ToggleUserStatusUseCase struct {
	deps Deps
}

func NewToggleUserStatusUseCase(deps Deps) *ToggleUserStatusUseCase {
	return &ToggleUserStatusUseCase{deps: deps}
}

// Execute переключает Active и Blocked.
func (uc *ToggleUserStatusUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	p, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := p.Status

	p.ToggleStatus(uc.deps.now())
	return persistStatus(ctx, uc.deps, p, previous)
}

func persistStatus(ctx context.Context, deps Deps, p *entity.Profile, previous valueobject.UserStatus) (*entity.Profile, error) {
	if err := deps.Repo.UpdateStatus(ctx, p); err != nil {
		return nil, err
	}
	deps.invalidate()

	saved, err := deps.Repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	deps.publish(ctx, repository.EventProfileStatusChanged, StatusChange{Profile: saved, Previous: previous})
	return saved, nil
}

type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Blocked int `json:"blocked"`
	Admins  int `json:"admins"`
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

func ComputeStats(items []*entity.Profile) *Stats {
	s := &Stats{}
	for _, p := range items {
		if p == nil {
			continue
		}
		s.Total++
		if p.IsBlocked() {
			s.Blocked++
		} else {
			s.Active++
		}
		if p.IsAdmin() {
			s.Admins++
		}
	}
	return s
}
