package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"

	"github.com/michaelrosejr/pytellum/internal"
	"github.com/michaelrosejr/pytellum/internal/logging"
	"github.com/michaelrosejr/pytellum/metrics"
	"github.com/michaelrosejr/pytellum/secrets"
)

type Config struct {
	// Issuer is the service account identifier, sent as the iss claim.
	Issuer  string
	AuthURL string

	// PrivateKey resolves PrivateKeyRef to PEM bytes. It is read on every
	// token request.
	PrivateKey         secrets.Source
	PrivateKeyRef      string
	PrivateKeyPassword string

	CachePath string
	Fs        afero.Fs

	// Persist writes tokens requested by ValidToken to the cache file.
	Persist bool

	HTTPClient *http.Client
	Now        func() time.Time
}

// Manager hands out access tokens, requesting a new one only when the held
// token is about to expire. It is safe for concurrent use within a process.
// The cache file is not locked, so separate processes sharing it may each
// request a token.
type Manager struct {
	cfg Config

	mu     sync.Mutex
	token  *Token
	loaded bool
}

var _ oauth2.TokenSource = &Manager{}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("token manager: issuer is required")
	}

	if cfg.AuthURL == "" {
		return nil, errors.New("token manager: auth url is required")
	}

	if cfg.PrivateKey == nil {
		return nil, errors.New("token manager: private key source is required")
	}

	if cfg.CachePath == "" {
		cfg.CachePath = DefaultCachePath
	}

	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{cfg: cfg}, nil
}

// ValidToken returns a token that stays valid for at least ExpiryMargin. The
// first call reads the cache file; any problem with it is logged and treated
// as no cached token.
func (m *Manager) ValidToken(ctx context.Context) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		m.loaded = true

		t, err := readCache(m.cfg.Fs, m.cfg.CachePath)
		if err != nil {
			logging.Debugf("%v", err)
		} else {
			m.token = &t
		}
	}

	if m.token != nil && m.token.Valid(m.cfg.Now(), ExpiryMargin) {
		metrics.TokenAcquisitions.WithLabelValues(metrics.SourceCache).Inc()
		return *m.token, nil
	}

	if m.token != nil {
		logging.Debugf("access token expired at %s, requesting a new one", m.token.ExpiresAt().UTC().Format(time.RFC3339))
	}

	return m.requestToken(ctx, m.cfg.Persist)
}

// RequestToken requests a new token regardless of the one held, and writes it
// to the cache file when persist is true.
func (m *Manager) RequestToken(ctx context.Context, persist bool) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loaded = true

	return m.requestToken(ctx, persist)
}

// PersistToken writes t to the cache file.
func (m *Manager) PersistToken(t Token) error {
	return writeCache(m.cfg.Fs, m.cfg.CachePath, t)
}

// LoadToken reads the cache file. It returns an error wrapping ErrCacheMiss
// when the file is absent or invalid.
func (m *Manager) LoadToken() (Token, error) {
	return readCache(m.cfg.Fs, m.cfg.CachePath)
}

// Token implements oauth2.TokenSource.
func (m *Manager) Token() (*oauth2.Token, error) {
	t, err := m.ValidToken(context.Background())
	if err != nil {
		return nil, err
	}

	return t.OAuth2(), nil
}

type grantResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (m *Manager) requestToken(ctx context.Context, persist bool) (Token, error) {
	pemBytes, err := m.cfg.PrivateKey.GetSecret(m.cfg.PrivateKeyRef)
	if err != nil {
		return Token{}, fmt.Errorf("%w %q: %w", ErrKeyRead, m.cfg.PrivateKeyRef, err)
	}

	key, err := parsePrivateKey(pemBytes, m.cfg.PrivateKeyPassword)
	if err != nil {
		return Token{}, fmt.Errorf("%w %q: %w", ErrKeyRead, m.cfg.PrivateKeyRef, err)
	}

	issued := m.cfg.Now()

	assertion, err := signAssertion(key, m.cfg.Issuer, m.cfg.AuthURL, issued)
	if err != nil {
		return Token{}, err
	}

	form := url.Values{}
	form.Set("grant_type", GrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, fmt.Errorf("token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", internal.UserAgent())

	logging.Debugf("requesting access token from %s", m.cfg.AuthURL)

	resp, err := m.cfg.HTTPClient.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Token{}, fmt.Errorf("token request: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Token{}, &AuthServerError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var grant grantResponse
	if err := json.Unmarshal(body, &grant); err != nil {
		return Token{}, &AuthServerError{StatusCode: resp.StatusCode, Reason: "invalid response: " + err.Error()}
	}

	if grant.AccessToken == "" {
		return Token{}, &AuthServerError{StatusCode: resp.StatusCode, Reason: "response has no access_token"}
	}

	t := Token{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		Scope:       grant.Scope,
		ExpiresIn:   grant.ExpiresIn,
		IssuedAt:    issued.Unix(),
	}

	if !t.Valid(m.cfg.Now(), ExpiryMargin) {
		return Token{}, &AuthServerError{
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("token lifetime of %ds is shorter than the %s refresh margin", t.ExpiresIn, ExpiryMargin),
		}
	}

	m.token = &t
	metrics.TokenAcquisitions.WithLabelValues(metrics.SourceRequest).Inc()

	if persist {
		if err := m.PersistToken(t); err != nil {
			logging.Warnf("access token not cached: %v", err)
		}
	}

	return t, nil
}
