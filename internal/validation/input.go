package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinUsernameLength   = 3
	MaxUsernameLength   = 30
	MaxFullNameLength   = 100
	MaxCategoryLength   = 60
	MaxAssigneeLength   = 120
	MaxReporterLength   = 120
	MaxImageURLLength   = 1000
	MaxBulkIDs          = 100
	MaxSearchTermLength = 200
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	usernameRegex    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	fullNameRegex    = regexp.MustCompile(`^[\p{L}0-9\s\-_.,'()]+$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	localPart, domainPart, ok := strings.Cut(email, "@")
	if !ok {
		return fmt.Errorf("email должен содержать символ @")
	}
	if strings.Contains(domainPart, "@") {
		return fmt.Errorf("некорректный формат email")
	}

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateFullName полное имя может быть пустым: тогда показывается username.
func ValidateFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil
	}
	if err := ValidateLength("полное имя", fullName, 0, MaxFullNameLength); err != nil {
		return err
	}
	if !fullNameRegex.MatchString(fullName) {
		return fmt.Errorf("полное имя содержит недопустимые символы")
	}
	return nil
}

func ValidateCategory(category string) error {
	return ValidateLength("категория", strings.TrimSpace(category), 0, MaxCategoryLength)
}

func ValidateAssignee(assignee string) error {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return fmt.Errorf("исполнитель обязателен")
	}
	return ValidateLength("исполнитель", assignee, 1, MaxAssigneeLength)
}

func ValidateReporter(reporter string) error {
	return ValidateLength("автор обращения", strings.TrimSpace(reporter), 0, MaxReporterLength)
}

// ValidateImageURL принимает абсолютные http(s) ссылки и пути от корня сайта.
func ValidateImageURL(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("ссылка на изображение не может быть пустой")
	}
	if err := ValidateLength("ссылка на изображение", link, 0, MaxImageURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("некорректный формат URL")
	}
	if parsedURL.Scheme == "" && strings.HasPrefix(link, "/") {
		return nil
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("ссылка должна начинаться с http:// или https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("ссылка должна содержать доменное имя")
	}
	return nil
}

// ValidateIDList проверяет список идентификаторов для пакетной операции.
func ValidateIDList(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("список идентификаторов пуст")
	}
	if len(ids) > MaxBulkIDs {
		return fmt.Errorf("за один раз можно изменить не более %d обращений", MaxBulkIDs)
	}
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("некорректный идентификатор обращения: %d", id)
		}
	}
	return nil
}

func ValidateSearchTerm(term string) error {
	return ValidateLength("поисковый запрос", term, 0, MaxSearchTermLength)
}
