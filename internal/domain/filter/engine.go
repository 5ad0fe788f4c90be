// Package filter сужает и разбивает на страницы коллекцию, уже загруженную
// из хранилища. Функции чистые: не обращаются к хранилищу и не возвращают ошибок.
package filter

// Page видимая страница результата.
type Page[T any] struct {
	Items      []T
	TotalPages int
	TotalCount int
	Page       int
	PerPage    int
}

// Predicate условие отбора. nil пропускает всё.
type Predicate[T any] func(T) bool

// All объединяет условия через И.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Where стабильно отбирает элементы, сохраняя исходный порядок.
func Where[T any](items []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred == nil || pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Paginate режет последовательность на страницы. Страниц всегда минимум одна,
// страница за пределами диапазона пустая. perPage не больше MaxPerPage.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = ComplaintsPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	pageItems := []T{}
	// page сравнивается до умножения, иначе (page-1)*perPage переполняется.
	if page <= totalPages {
		start := (page - 1) * perPage
		end := min(start+perPage, total)
		if start < end {
			pageItems = make([]T, 0, end-start)
			pageItems = append(pageItems, items[start:end]...)
		}
	}

	return Page[T]{
		Items:      pageItems,
		TotalPages: totalPages,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}
}

// Apply фильтрует и возвращает запрошенную страницу.
func Apply[T any](items []T, pred Predicate[T], page, perPage int) Page[T] {
	return Paginate(Where(items, pred), page, perPage)
}

// HasNext есть ли следующая страница.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Window номера страниц для переключателя, не больше size штук вокруг текущей.
func Window(current, totalPages, size int) []int {
	if size < 1 {
		size = 5
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start, end := 1, totalPages
	if totalPages > size {
		start = current - size/2
		if start < 1 {
			start = 1
		}
		end = start + size - 1
		if end > totalPages {
			end = totalPages
			start = end - size + 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
