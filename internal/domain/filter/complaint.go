package filter

import (
	"strings"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
)

// ComplaintPredicate собирает условие для обращений.
//
// Поиск: точное совпадение id в десятичной записи ИЛИ подстрока в имени автора
// ИЛИ подстрока в описании, без учёта регистра.
func ComplaintPredicate(c Criteria) Predicate[*entity.Complaint] {
	n := c.normalized()
	preds := []Predicate[*entity.Complaint]{notNil[*entity.Complaint]}

	if n.Search != "" {
		term := n.Search
		preds = append(preds, func(item *entity.Complaint) bool {
			if item.IDString() == term {
				return true
			}
			return strings.Contains(strings.ToLower(item.ReporterName()), term) ||
				strings.Contains(strings.ToLower(item.Description), term)
		})
	}

	if n.Category != "" {
		category := n.Category
		preds = append(preds, func(item *entity.Complaint) bool {
			return item.CategoryOrDefault() == category
		})
	}

	if n.Status != "" {
		// Неизвестная метка сравнивается как есть и ничего не находит.
		status := valueobject.NormalizeComplaintStatus(n.Status)
		preds = append(preds, func(item *entity.Complaint) bool {
			return valueobject.NormalizeComplaintStatus(string(item.Status)) == status
		})
	}

	if n.Priority != "" {
		priority := n.Priority
		preds = append(preds, func(item *entity.Complaint) bool {
			return strings.EqualFold(string(item.Priority), priority)
		})
	}

	if r := newDateRange(n.StartDate, n.EndDate); r.hasFrom || r.hasTo {
		preds = append(preds, func(item *entity.Complaint) bool {
			return r.contains(item.CreatedAt)
		})
	}

	return All(preds...)
}

// Complaints страница обращений по критериям.
func Complaints(items []*entity.Complaint, c Criteria, page, perPage int) Page[*entity.Complaint] {
	if perPage < 1 {
		perPage = ComplaintsPerPage
	}
	return Apply(items, ComplaintPredicate(c), page, perPage)
}

func notNil[T comparable](item T) bool {
	var zero T
	return item != zero
}
