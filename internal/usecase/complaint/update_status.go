package complaint

import (
	"context"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

// StatusChange полезная нагрузка события complaint.status_changed.
type StatusChange struct {
	Complaint *entity.Complaint           `json:"complaint"`
	Previous  valueobject.ComplaintStatus `json:"previous_status"`
}

type UpdateComplaintStatusUseCase struct {
	deps Deps
}

func NewUpdateComplaintStatusUseCase(deps Deps) *UpdateComplaintStatusUseCase {
	return &UpdateComplaintStatusUseCase{deps: deps}
}

// Execute меняет статус и возвращает запись в том виде, в каком её сохранило
// хранилище. Если запись не удалась, снимок остаётся прежним.
func (uc *UpdateComplaintStatusUseCase) Execute(ctx context.Context, id int64, status string) (*entity.Complaint, error) {
	next, err := valueobject.ParseComplaintStatus(status)
	if err != nil {
		return nil, err
	}

	c, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := c.Status

	if err := c.ChangeStatus(next, uc.deps.now()); err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.UpdateStatus(ctx, c); err != nil {
		return nil, err
	}
	uc.deps.invalidate()

	saved, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.deps.publish(ctx, repository.EventComplaintStatusChanged, StatusChange{Complaint: saved, Previous: previous})
	return saved, nil
}

type BulkUpdateStatusUseCase struct {
	deps Deps
}

func NewBulkUpdateStatusUseCase(deps Deps) *BulkUpdateStatusUseCase {
	return &BulkUpdateStatusUseCase{deps: deps}
}

// Execute переводит несколько обращений в один статус одной транзакцией.
// Неизвестный идентификатор отменяет всю операцию.
func (uc *BulkUpdateStatusUseCase) Execute(ctx context.Context, ids []int64, status string) ([]*entity.Complaint, error) {
	ids = uniqueIDs(ids)
	if err := validation.ValidateIDList(ids); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	next, err := valueobject.ParseComplaintStatus(status)
	if err != nil {
		return nil, err
	}

	found, err := uc.deps.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, apperror.ErrComplaintNotFound
	}

	now := uc.deps.now()
	previous := make(map[int64]valueobject.ComplaintStatus, len(found))
	for _, c := range found {
		previous[c.ID] = c.Status
		if err := c.ChangeStatus(next, now); err != nil {
			return nil, err
		}
	}

	if err := uc.deps.Repo.UpdateMany(ctx, found); err != nil {
		return nil, err
	}
	uc.deps.invalidate()

	saved, err := uc.deps.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range saved {
		uc.deps.publish(ctx, repository.EventComplaintStatusChanged, StatusChange{Complaint: c, Previous: previous[c.ID]})
	}
	return saved, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
