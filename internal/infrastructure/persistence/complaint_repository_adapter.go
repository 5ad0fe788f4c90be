package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

const complaintColumns = `id, title, description, category, status, priority, reporter, user_name,
	user_email, created_by, image_url, assigned_to, created_at, updated_at, resolved_at`

type complaintRow struct {
	ID          int64                 `db:"id"`
	Title       string                `db:"title"`
	Description string                `db:"description"`
	Category    sql.NullString        `db:"category"`
	Status      string                `db:"status"`
	Priority    string                `db:"priority"`
	Reporter    sql.NullString        `db:"reporter"`
	UserName    sql.NullString        `db:"user_name"`
	UserEmail   sql.NullString        `db:"user_email"`
	CreatedBy   sql.NullString        `db:"created_by"`
	ImageURL    valueobject.ImageRefs `db:"image_url"`
	AssignedTo  *string               `db:"assigned_to"`
	CreatedAt   time.Time             `db:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at"`
	ResolvedAt  *time.Time            `db:"resolved_at"`
}

func (r complaintRow) toEntity() *entity.Complaint {
	priority, err := valueobject.NewPriority(r.Priority)
	if err != nil {
		priority = valueobject.PriorityMedium
	}
	return &entity.Complaint{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category.String,
		Status:      valueobject.NormalizeComplaintStatus(r.Status),
		Priority:    priority,
		Reporter:    r.Reporter.String,
		UserName:    r.UserName.String,
		UserEmail:   r.UserEmail.String,
		CreatedBy:   r.CreatedBy.String,
		Images:      r.ImageURL,
		AssignedTo:  r.AssignedTo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

// ComplaintRepositoryAdapter хранит обращения в таблице issues.
type ComplaintRepositoryAdapter struct {
	store
}

func NewComplaintRepositoryAdapter(db *sqlx.DB, timeout time.Duration) *ComplaintRepositoryAdapter {
	return &ComplaintRepositoryAdapter{store: newStore(db, timeout)}
}

func (r *ComplaintRepositoryAdapter) Create(ctx context.Context, c *entity.Complaint) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	query := `
		INSERT INTO issues (title, description, category, status, priority, reporter, user_name,
			user_email, created_by, image_url, assigned_to, created_at, updated_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		c.Title,
		c.Description,
		nullString(c.Category),
		string(c.Status),
		string(c.Priority),
		nullString(c.Reporter),
		nullString(c.UserName),
		nullString(c.UserEmail),
		nullString(c.CreatedBy),
		c.Images,
		c.AssignedTo,
		c.CreatedAt,
		c.UpdatedAt,
		c.ResolvedAt,
	).Scan(&c.ID)
	return translate(ctx, err, nil, "не удалось создать обращение")
}

func (r *ComplaintRepositoryAdapter) Update(ctx context.Context, c *entity.Complaint) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	query := `
		UPDATE issues
		SET title = $2, description = $3, category = $4, priority = $5, image_url = $6,
		    assigned_to = $7, status = $8, resolved_at = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Title,
		c.Description,
		nullString(c.Category),
		string(c.Priority),
		c.Images,
		c.AssignedTo,
		string(c.Status),
		c.ResolvedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return translate(ctx, err, nil, "не удалось обновить обращение")
	}
	return translate(ctx, expectAffected(res, apperror.ErrComplaintNotFound), nil, "не удалось обновить обращение")
}

// UpdateStatus записывает только статус и связанные с ним отметки времени.
func (r *ComplaintRepositoryAdapter) UpdateStatus(ctx context.Context, c *entity.Complaint) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateStatusQuery, c.ID, string(c.Status), c.ResolvedAt, c.UpdatedAt)
	if err != nil {
		return translate(ctx, err, nil, "не удалось обновить статус обращения")
	}
	return translate(ctx, expectAffected(res, apperror.ErrComplaintNotFound), nil, "не удалось обновить статус обращения")
}

const updateStatusQuery = `UPDATE issues SET status = $2, resolved_at = $3, updated_at = $4 WHERE id = $1`

// UpdateMany меняет статусы пачкой: либо все, либо ни одного.
func (r *ComplaintRepositoryAdapter) UpdateMany(ctx context.Context, complaints []*entity.Complaint) error {
	if len(complaints) == 0 {
		return nil
	}
	ctx, cancel := r.call(ctx)
	defer cancel()

	err := withTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, updateStatusQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range complaints {
			res, err := stmt.ExecContext(ctx, c.ID, string(c.Status), c.ResolvedAt, c.UpdatedAt)
			if err != nil {
				return err
			}
			if err := expectAffected(res, apperror.ErrComplaintNotFound); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(ctx, err, nil, "не удалось обновить статусы обращений")
}

func (r *ComplaintRepositoryAdapter) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return translate(ctx, err, nil, "не удалось удалить обращение")
	}
	return translate(ctx, expectAffected(res, apperror.ErrComplaintNotFound), nil, "не удалось проверить результат удаления")
}

func (r *ComplaintRepositoryAdapter) FindByID(ctx context.Context, id int64) (*entity.Complaint, error) {
	ctx, cancel := r.call(ctx)
	defer cancel()

	var row complaintRow
	err := r.db.GetContext(ctx, &row, `SELECT `+complaintColumns+` FROM issues WHERE id = $1`, id)
	if err != nil {
		return nil, translate(ctx, err, apperror.ErrComplaintNotFound, "не удалось получить обращение")
	}
	return row.toEntity(), nil
}

func (r *ComplaintRepositoryAdapter) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Complaint, error) {
	if len(ids) == 0 {
		return []*entity.Complaint{}, nil
	}
	return r.list(ctx, `SELECT `+complaintColumns+` FROM issues WHERE id = ANY($1) ORDER BY created_at DESC, id DESC`,
		pq.Array(ids))
}

// ListAll отдаёт все обращения от новых к старым.
func (r *ComplaintRepositoryAdapter) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	return r.list(ctx, `SELECT `+complaintColumns+` FROM issues ORDER BY created_at DESC, id DESC`)
}

func (r *ComplaintRepositoryAdapter) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Complaint, error) {
	ctx, cancel := r.call(ctx)
	defer cancel()

	var rows []complaintRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(ctx, err, nil, "не удалось получить обращения")
	}

	complaints := make([]*entity.Complaint, 0, len(rows))
	for _, row := range rows {
		complaints = append(complaints, row.toEntity())
	}
	return complaints, nil
}
