package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ============================================================
// Image Storage
// ============================================================

var ErrImageNotFound = errors.New("image not found")

// ImageStorage хранит загруженное фоновое изображение: одна папка на сессию,
// в папке не больше одного файла.
type ImageStorage struct {
	root string
}

func NewImageStorage(root string) *ImageStorage {
	return &ImageStorage{root: root}
}

func (s *ImageStorage) SessionDir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

func (s *ImageStorage) ImagePath(sessionID, filename string) string {
	return filepath.Join(s.SessionDir(sessionID), filepath.Base(filename))
}

func (s *ImageStorage) EnsureDir(sessionID string) error {
	path := s.SessionDir(sessionID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	return nil
}

// Save заменяет изображение сессии новым файлом.
func (s *ImageStorage) Save(sessionID, filename string, data []byte) (string, error) {
	if err := s.Remove(sessionID); err != nil {
		return "", err
	}
	if err := s.EnsureDir(sessionID); err != nil {
		return "", err
	}

	path := s.ImagePath(sessionID, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Path возвращает путь к изображению сессии.
func (s *ImageStorage) Path(sessionID string) (string, error) {
	entries, err := os.ReadDir(s.SessionDir(sessionID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrImageNotFound
		}
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() {
			return filepath.Join(s.SessionDir(sessionID), e.Name()), nil
		}
	}
	return "", ErrImageNotFound
}

// Load декодирует изображение сессии.
func (s *ImageStorage) Load(sessionID string) (image.Image, error) {
	path, err := s.Path(sessionID)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func (s *ImageStorage) Remove(sessionID string) error {
	if err := os.RemoveAll(s.SessionDir(sessionID)); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	return nil
}

// DecodeSize читает только заголовок изображения и возвращает натуральный размер.
func DecodeSize(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, format, nil
}
