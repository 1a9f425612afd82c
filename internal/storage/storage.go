// Package storage envia cópias dos backups exportados para um bucket externo.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/detranagenda/painel/internal/config"
)

// ErrNotConfigured indica que nenhum destino de backup foi configurado.
var ErrNotConfigured = errors.New("storage: destino de backup não configurado")

// Object é um arquivo a ser enviado.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
}

// Stored descreve o arquivo gravado no destino.
type Stored struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	ETag string `json:"etag,omitempty"`
}

// Uploader grava objetos num destino externo.
type Uploader interface {
	Put(ctx context.Context, obj Object) (Stored, error)
}

// Noop é usado quando BACKUP_PROVIDER=noop.
type Noop struct{}

func (Noop) Put(context.Context, Object) (Stored, error) {
	return Stored{}, ErrNotConfigured
}

// New escolhe o uploader conforme a configuração de backup.
func New(cfg config.BackupConfig) (Uploader, error) {
	switch cfg.Provider {
	case "", "noop":
		return Noop{}, nil
	case "s3", "r2":
		return NewS3(S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("storage: provedor %q não suportado", cfg.Provider)
	}
}

// BackupKey posiciona o arquivo exportado sob o prefixo backups/.
func BackupKey(fileName string) string {
	return "backups/" + strings.TrimLeft(fileName, "/")
}
