package complaint

import (
	"context"
	"io"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/logger"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

// ImageStore файловое хранилище фотографий обращений.
type ImageStore interface {
	Save(ctx context.Context, folder, originalName string, r io.Reader) (string, int64, error)
	PublicURL(relativePath string) string
	Delete(ctx context.Context, relativePath string) error
}

type AttachImageUseCase struct {
	deps   Deps
	images ImageStore
}

func NewAttachImageUseCase(deps Deps, images ImageStore) *AttachImageUseCase {
	return &AttachImageUseCase{deps: deps, images: images}
}

// Execute сохраняет файл и добавляет ссылку на него к обращению.
// Если обращение записать не удалось, файл удаляется.
func (uc *AttachImageUseCase) Execute(ctx context.Context, id int64, fileName string, r io.Reader) (*entity.Complaint, error) {
	c, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, _, err := uc.images.Save(ctx, c.IDString(), fileName, r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "не удалось сохранить изображение")
	}

	c.AttachImage(uc.images.PublicURL(path), uc.deps.now())

	saved, err := persist(ctx, uc.deps, c, repository.EventComplaintUpdated)
	if err != nil {
		if delErr := uc.images.Delete(context.WithoutCancel(ctx), path); delErr != nil {
			logger.Log.WithError(delErr).WithField("path", path).Warn("complaint: не удалось удалить файл после ошибки записи")
		}
		return nil, err
	}
	return saved, nil
}
