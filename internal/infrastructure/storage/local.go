package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/pkg/config"
)

// Tipos de archivo admitidos como adjunto de una orden.
var allowedContentTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// LocalStorage guarda adjuntos de órdenes en disco local bajo
// <dir>/orders/, con nombre UUID para evitar colisiones, y devuelve la URL
// pública con la que se sirve el archivo.
type LocalStorage struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewLocal construye el almacenamiento y asegura el directorio de órdenes.
func NewLocal(cfg config.UploadConfig, appURL string) (*LocalStorage, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(filepath.Join(dir, "orders"), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimRight(appURL, "/"),
		maxSize: int64(cfg.MaxSizeMB) * 1024 * 1024,
	}, nil
}

// Dir directorio raíz de uploads, para servirlo como estático.
func (s *LocalStorage) Dir() string { return s.dir }

// SaveOrderFile valida tipo y tamaño, persiste el archivo con nombre UUID y
// devuelve su URL pública.
func (s *LocalStorage) SaveOrderFile(fh *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", domain.NewValidation(fmt.Sprintf("File exceeds maximum size of %d bytes", s.maxSize))
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return "", domain.NewValidation("File type not allowed")
	}

	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dstPath := filepath.Join(s.dir, "orders", name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("crear archivo destino: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("guardar archivo: %w", err)
	}
	return fmt.Sprintf("%s/uploads/orders/%s", s.baseURL, name), nil
}
