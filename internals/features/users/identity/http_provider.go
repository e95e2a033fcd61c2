package identity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"sekolahku_backend/internals/configs"
)

// HTTPProvider bicara ke REST API identity provider (Bearer secret key).
type HTTPProvider struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

func NewHTTPProviderFromEnv() *HTTPProvider {
	return &HTTPProvider{
		BaseURL:   strings.TrimRight(configs.IdentityBaseURL, "/"),
		SecretKey: configs.IdentitySecretKey,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type providerAccount struct {
	ID string `json:"id"`
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return &ProviderError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil && len(raw) > 0 {
		return sonic.Unmarshal(raw, out)
	}
	return nil
}

func (p *HTTPProvider) CreateAccount(ctx context.Context, in NewAccount) (string, error) {
	payload := map[string]any{
		"email_address": []string{in.Email},
		"username":      in.Username,
		"password":      in.Password,
		"first_name":    in.FirstName,
		"last_name":     in.LastName,
	}
	var acc providerAccount
	if err := p.do(ctx, http.MethodPost, "/v1/users", payload, &acc); err != nil {
		return "", err
	}
	return acc.ID, nil
}

func (p *HTTPProvider) UpdateAccount(ctx context.Context, providerID string, in UpdateAccount) error {
	payload := map[string]any{
		"username":   in.Username,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
	}
	return p.do(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(providerID), payload, nil)
}

func (p *HTTPProvider) DeleteAccount(ctx context.Context, providerID string) error {
	return p.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(providerID), nil, nil)
}

func (p *HTTPProvider) FindAccountIDByEmail(ctx context.Context, email string) (string, error) {
	var accounts []providerAccount
	path := "/v1/users?email_address=" + url.QueryEscape(email)
	if err := p.do(ctx, http.MethodGet, path, nil, &accounts); err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", nil
	}
	return accounts[0].ID, nil
}
