package repository

import (
	"context"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
)

// ComplaintRepository коллекция issues. ListAll отдаёт записи от новых к старым.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	Update(ctx context.Context, complaint *entity.Complaint) error
	UpdateStatus(ctx context.Context, complaint *entity.Complaint) error
	UpdateMany(ctx context.Context, complaints []*entity.Complaint) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Complaint, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Complaint, error)
	ListAll(ctx context.Context) ([]*entity.Complaint, error)
}
