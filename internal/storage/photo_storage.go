package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhotoStorage хранит фотографии обращений на диске, по каталогу на обращение.
type PhotoStorage struct {
	rootPath       string
	baseURL        string
	maxUploadBytes int64
}

// NewPhotoStorage создаёт файловое хранилище. baseURL префикс, под которым
// каталог раздаётся статикой.
func NewPhotoStorage(rootPath, baseURL string, maxUploadMB int64) (*PhotoStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &PhotoStorage{
		rootPath:       rootPath,
		baseURL:        strings.TrimRight(baseURL, "/"),
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save сохраняет файл в каталог folder и возвращает относительный путь.
func (s *PhotoStorage) Save(ctx context.Context, folder, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	folder = sanitizeFilename(folder)
	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString()[:8], strings.ToLower(filepath.Ext(safeName)))

	dir := filepath.Join(s.rootPath, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог обращения: %w", err)
	}

	written, err := s.writeAtomic(filepath.Join(dir, fileName), r)
	if err != nil {
		return "", 0, err
	}

	return path.Join(folder, fileName), written, nil
}

// writeAtomic пишет во временный файл и переименовывает его только после
// проверки лимита, так что недописанный файл никогда не виден по ссылке.
func (s *PhotoStorage) writeAtomic(target string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	fail := func(err error) (int64, error) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return 0, err
	}

	written, err := io.Copy(tmp, io.LimitReader(r, s.maxUploadBytes+1))
	switch {
	case err != nil:
		return fail(fmt.Errorf("storage: ошибка записи файла: %w", err))
	case written > s.maxUploadBytes:
		return fail(fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes))
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}
	return written, nil
}

// PublicURL ссылка, по которой фронтенд покажет файл.
func (s *PhotoStorage) PublicURL(relativePath string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(relativePath), "/")
}

// Delete удаляет файл из хранилища. Отсутствие файла ошибкой не считается.
func (s *PhotoStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("storage: недопустимый путь %q", relativePath)
	}

	target := filepath.Join(s.rootPath, clean)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "photo"
	}
	return name
}
