package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ImageRefs ссылки на фотографии обращения. В хранилище колонка image_url
// содержит либо один URL, либо JSON-массив URL.
type ImageRefs []string

func NewImageRefs(urls ...string) ImageRefs {
	refs := make(ImageRefs, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			refs = append(refs, u)
		}
	}
	return refs
}

func (r ImageRefs) First() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

func (r ImageRefs) Append(url string) ImageRefs {
	return NewImageRefs(append(append([]string{}, r...), url)...)
}

// Scan реализует sql.Scanner.
func (r *ImageRefs) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		return r.parse(v)
	case []byte:
		return r.parse(string(v))
	default:
		return fmt.Errorf("image_url: неподдерживаемый тип %T", src)
	}
}

// Value реализует driver.Valuer.
func (r ImageRefs) Value() (driver.Value, error) {
	switch len(r) {
	case 0:
		return nil, nil
	case 1:
		return r[0], nil
	default:
		raw, err := json.Marshal([]string(r))
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
}

// UnmarshalJSON принимает строку, массив строк или null.
func (r *ImageRefs) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*r = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = NewImageRefs(list...)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*r = NewImageRefs(single)
	return nil
}

func (r ImageRefs) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(r))
}

func (r *ImageRefs) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*r = nil
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return fmt.Errorf("image_url: некорректный JSON-массив: %w", err)
		}
		*r = NewImageRefs(list...)
		return nil
	}
	*r = NewImageRefs(raw)
	return nil
}
