package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// S3Config descreve um bucket compatível com S3 (AWS ou Cloudflare R2).
type S3Config struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PublicURL  string
	HTTPClient *http.Client
}

// S3 envia objetos com PUT assinado em SigV4.
type S3 struct {
	cfg    S3Config
	client *http.Client
	signer signer
	now    func() time.Time
}

// NewS3 valida a configuração e prepara o cliente.
func NewS3(cfg S3Config) (*S3, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &S3{
		cfg:    cfg,
		client: client,
		signer: signer{accessKey: cfg.AccessKey, secretKey: cfg.SecretKey, region: cfg.Region, service: "s3"},
		now:    time.Now,
	}, nil
}

func (u *S3) Put(ctx context.Context, obj Object) (Stored, error) {
	key := strings.TrimLeft(strings.TrimSpace(obj.Key), "/")
	if key == "" {
		return Stored{}, errors.New("storage: chave do objeto obrigatória")
	}
	if len(obj.Body) == 0 {
		return Stored{}, errors.New("storage: corpo vazio")
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/json"
	}

	escaped := (&url.URL{Path: key}).EscapedPath()
	target := fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.Endpoint, "/"), u.cfg.Bucket, escaped)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(obj.Body))
	if err != nil {
		return Stored{}, err
	}
	req.ContentLength = int64(len(obj.Body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Length", strconv.Itoa(len(obj.Body)))
	u.signer.sign(req, obj.Body, u.now())

	resp, err := u.client.Do(req)
	if err != nil {
		return Stored{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Stored{}, fmt.Errorf("storage: upload falhou (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	stored := Stored{Key: key, URL: target, ETag: strings.Trim(resp.Header.Get("ETag"), `"`)}
	if base := strings.TrimSpace(u.cfg.PublicURL); base != "" {
		stored.URL = strings.TrimRight(base, "/") + "/" + escaped
	}
	return stored, nil
}

func (cfg S3Config) validate() error {
	required := []struct{ value, name string }{
		{cfg.Endpoint, "endpoint"},
		{cfg.Region, "região"},
		{cfg.Bucket, "bucket"},
		{cfg.AccessKey, "access key"},
		{cfg.SecretKey, "secret key"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("storage: %s do S3 ausente", r.name)
		}
	}
	if !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return errors.New("storage: endpoint deve incluir protocolo http/https")
	}
	return nil
}
