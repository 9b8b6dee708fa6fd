package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Source loads the question bundle, preferring the remote endpoint and falling
// back to the bundled local file when the fetch fails.
type Source struct {
	remoteURL  string
	localPath  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewSource builds a bundle loader. remoteURL may be empty, in which case only
// the local file is consulted.
func NewSource(remoteURL, localPath string, httpClient *http.Client, logger zerolog.Logger) *Source {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Source{
		remoteURL:  remoteURL,
		localPath:  localPath,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Fetch returns the full question set from the first source that works.
func (s *Source) Fetch(ctx context.Context) ([]Question, error) {
	if s.remoteURL != "" {
		questions, err := s.fetchRemote(ctx)
		if err == nil {
			return questions, nil
		}
		s.logger.Warn().Err(err).Str("url", s.remoteURL).Msg("remote catalog fetch failed, falling back to local bundle")
	}
	return s.loadLocal()
}

func (s *Source) fetchRemote(ctx context.Context) ([]Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.remoteURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog endpoint non-200: %d", resp.StatusCode)
	}

	var bundle Bundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return bundle.Questions, nil
}

func (s *Source) loadLocal() ([]Question, error) {
	data, err := os.ReadFile(s.localPath)
	if err != nil {
		return nil, fmt.Errorf("read local bundle: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("decode local bundle: %w", err)
	}
	return bundle.Questions, nil
}
