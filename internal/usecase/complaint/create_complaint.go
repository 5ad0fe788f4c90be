package complaint

import (
	"context"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

type CreateComplaintUseCase struct {
	deps Deps
}

func NewCreateComplaintUseCase(deps Deps) *CreateComplaintUseCase {
	return &CreateComplaintUseCase{deps: deps}
}

func (uc *CreateComplaintUseCase) Execute(ctx context.Context, in entity.NewComplaintInput) (*entity.Complaint, error) {
	if err := validateComplaintInput(in); err != nil {
		return nil, err
	}

	c, err := entity.NewComplaint(in, uc.deps.now())
	if err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.deps.invalidate()

	saved, err := uc.deps.Repo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	uc.deps.publish(ctx, repository.EventComplaintCreated, saved)
	return saved, nil
}

func validateComplaintInput(in entity.NewComplaintInput) error {
	checks := []error{
		validation.ValidateCategory(in.Category),
		validation.ValidateReporter(in.Reporter),
		validation.ValidateReporter(in.UserName),
	}
	if in.UserEmail != "" {
		checks = append(checks, validation.ValidateEmail(in.UserEmail))
	}
	for _, img := range in.Images {
		checks = append(checks, validation.ValidateImageURL(img))
	}

	for _, err := range checks {
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	return nil
}
