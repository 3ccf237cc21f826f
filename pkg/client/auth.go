package client

import (
	"context"
	"fmt"

	apierrors "claresys/pkg/errors"
	"claresys/pkg/model"
)

type AuthClient struct {
	http *HTTPClient
}

func NewAuthClient(http *HTTPClient) *AuthClient {
	return &AuthClient{http: http}
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	resp, err := c.http.POST(ctx, "/api/v1/auth/login", model.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var auth model.AuthResponse
	if err := resp.DecodeJSON(&auth); err != nil {
		return nil, fmt.Errorf("could not decode auth response: %w", err)
	}
	if auth.AccessToken == "" {
		return nil, apierrors.Unauthorized("login succeeded but no access token was returned")
	}

	return &auth, nil
}
