package remote

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const grantType = "client_credentials"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// TokenProvider exchanges client credentials for a bearer token. Concurrent
// callers share one in-flight exchange; nothing is cached beyond it.
type TokenProvider struct {
	client *Client
	creds  *config.Credentials
	group  singleflight.Group
}

func NewTokenProvider(client *Client, creds *config.Credentials) *TokenProvider {
	return &TokenProvider{
		client: client,
		creds:  creds,
	}
}

func (p *TokenProvider) GetAccessToken(ctx context.Context) (string, error) {
	v, err, _ := p.group.Do(p.creds.ClientID, func() (interface{}, error) {
		return p.exchange(ctx)
	})
	if err != nil {
		return "", &domain.AuthError{Err: err}
	}

	return v.(string), nil
}

func (p *TokenProvider) exchange(ctx context.Context) (string, error) {
	if err := p.client.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var res tokenResponse

	resp, err := p.client.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    grantType,
			"client_id":     p.creds.ClientID,
			"client_secret": p.creds.ClientSecret,
		}).
		SetResult(&res).
		Post(tokenPath)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode())
	}

	if res.AccessToken == "" {
		return "", errors.New("token endpoint returned no access token")
	}

	return res.AccessToken, nil
}
