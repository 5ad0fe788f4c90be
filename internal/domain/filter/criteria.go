package filter

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// Размер страницы для каждого представления.
const (
	ComplaintsPerPage = 10
	UsersPerPage      = 8
	SummaryPerPage    = 5

	// MaxPerPage верхняя граница размера страницы из запроса.
	MaxPerPage = 100
)

// Criteria параметры фильтрации. Пустое поле означает отсутствие ограничения.
type Criteria struct {
	Search    string
	Category  string
	Status    string
	Priority  string
	Role      string
	StartDate string
	EndDate   string
}

// IsEmpty true, когда фильтр ничего не ограничивает.
func (c Criteria) IsEmpty() bool {
	return c.normalized() == Criteria{}
}

// Fingerprint стабильный отпечаток критериев. Клиент возвращает его вместе
// с номером страницы, смена отпечатка сбрасывает страницу на первую.
func (c Criteria) Fingerprint() string {
	n := c.normalized()
	h := fnv.New64a()
	for _, part := range []string{n.Search, n.Category, n.Status, n.Priority, n.Role, n.StartDate, n.EndDate} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func (c Criteria) normalized() Criteria {
	return Criteria{
		Search:    strings.ToLower(strings.TrimSpace(c.Search)),
		Category:  strings.TrimSpace(c.Category),
		Status:    strings.TrimSpace(c.Status),
		Priority:  strings.TrimSpace(c.Priority),
		Role:      strings.TrimSpace(c.Role),
		StartDate: strings.TrimSpace(c.StartDate),
		EndDate:   strings.TrimSpace(c.EndDate),
	}
}

// ResolvePage возвращает страницу, которую нужно показать. Если клиент прислал
// отпечаток других критериев, фильтр изменился и показываем первую страницу.
func ResolvePage(c Criteria, page int, token string) int {
	if token != "" && token != c.Fingerprint() {
		return 1
	}
	if page < 1 {
		return 1
	}
	return page
}

// dateRange включительный диапазон календарных дней (UTC).
type dateRange struct {
	from, to time.Time
	hasFrom  bool
	hasTo    bool
}

func newDateRange(start, end string) dateRange {
	var r dateRange
	if d, ok := parseDay(start); ok {
		r.from, r.hasFrom = d, true
	}
	if d, ok := parseDay(end); ok {
		r.to, r.hasTo = d, true
	}
	return r
}

func (r dateRange) contains(t time.Time) bool {
	day := truncateDay(t)
	if r.hasFrom && day.Before(r.from) {
		return false
	}
	if r.hasTo && day.After(r.to) {
		return false
	}
	return true
}

var dayLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"}

// parseDay некорректная дата не ограничивает выборку.
func parseDay(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
