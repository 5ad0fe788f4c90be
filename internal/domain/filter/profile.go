package filter

import (
	"strings"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
)

// ProfilePredicate поиск по отображаемому имени или email.
func ProfilePredicate(c Criteria) Predicate[*entity.Profile] {
	n := c.normalized()
	preds := []Predicate[*entity.Profile]{notNil[*entity.Profile]}

	if n.Search != "" {
		term := n.Search
		preds = append(preds, func(p *entity.Profile) bool {
			return strings.Contains(strings.ToLower(p.DisplayName()), term) ||
				strings.Contains(strings.ToLower(p.Email), term)
		})
	}

	if n.Status != "" {
		status := n.Status
		preds = append(preds, func(p *entity.Profile) bool {
			return strings.EqualFold(string(p.Status), status)
		})
	}

	if n.Role != "" {
		role := n.Role
		preds = append(preds, func(p *entity.Profile) bool {
			return strings.EqualFold(string(p.Role), role)
		})
	}

	return All(preds...)
}

// Profiles фильтрует аккаунты и возвращает страницу, по умолчанию UsersPerPage строк.
func Profiles(items []*entity.Profile, c Criteria, page, perPage int) Page[*entity.Profile] {
	if perPage < 1 {
		perPage = UsersPerPage
	}
	return Apply(items, ProfilePredicate(c), page, perPage)
}
