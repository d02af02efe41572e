package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yukikurage/tasks-api/internal/models"
	"go.uber.org/zap"
)

// maxUpstreamErrorBody caps how much of a failed upstream response is kept.
const maxUpstreamErrorBody = 4 << 10

// DirectoryService proxies the external user directory
type DirectoryService struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewDirectoryService creates a DirectoryService for baseURL. Requests are
// bounded by timeout.
func NewDirectoryService(baseURL string, timeout time.Duration, log *zap.Logger) *DirectoryService {
	return &DirectoryService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("directory_service"),
	}
}

// ListUsers fetches GET {baseURL}/users. Unknown fields are ignored.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]models.ExternalUser, error) {
	url := s.baseURL + "/users"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("External directory request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDirectoryTransport, err)
	}
	defer resp.Body.Close()

	s.log.Debug("External directory responded",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamErrorBody))
		s.log.Warn("External directory returned an error",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	users := []models.ExternalUser{}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", ErrDirectoryTransport, err)
	}
	return users, nil
}
