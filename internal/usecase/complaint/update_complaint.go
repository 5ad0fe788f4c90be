package complaint

import (
	"context"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

type UpdateComplaintUseCase struct {
	deps Deps
}

func NewUpdateComplaintUseCase(deps Deps) *UpdateComplaintUseCase {
	return &UpdateComplaintUseCase{deps: deps}
}

// Execute частично обновляет текстовые поля обращения.
func (uc *UpdateComplaintUseCase) Execute(ctx context.Context, id int64, patch entity.ComplaintPatch) (*entity.Complaint, error) {
	if patch.Category != nil {
		if err := validation.ValidateCategory(*patch.Category); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	c, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Apply(patch, uc.deps.now()); err != nil {
		return nil, err
	}

	return persist(ctx, uc.deps, c, repository.EventComplaintUpdated)
}

type AssignComplaintUseCase struct {
	deps Deps
}

func NewAssignComplaintUseCase(deps Deps) *AssignComplaintUseCase {
	return &AssignComplaintUseCase{deps: deps}
}

// Execute назначает исполнителя, обращение переходит в работу.
func (uc *AssignComplaintUseCase) Execute(ctx context.Context, id int64, assignee string) (*entity.Complaint, error) {
	if err := validation.ValidateAssignee(assignee); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	c, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Assign(assignee, uc.deps.now()); err != nil {
		return nil, err
	}

	return persist(ctx, uc.deps, c, repository.EventComplaintUpdated)
}

type DeleteComplaintUseCase struct {
	deps Deps
}

func NewDeleteComplaintUseCase(deps Deps) *DeleteComplaintUseCase {
	return &DeleteComplaintUseCase{deps: deps}
}

func (uc *DeleteComplaintUseCase) Execute(ctx context.Context, id int64) error {
	if err := uc.deps.Repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.deps.invalidate()
	uc.deps.publish(ctx, repository.EventComplaintDeleted, map[string]int64{"id": id})
	return nil
}

// persist записывает обращение целиком и возвращает перечитанную запись.
func persist(ctx context.Context, deps Deps, c *entity.Complaint, event string) (*entity.Complaint, error) {
	if err := deps.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	deps.invalidate()

	saved, err := deps.Repo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	deps.publish(ctx, event, saved)
	return saved, nil
}
