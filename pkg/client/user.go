package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"claresys/pkg/model"
)

type UserClient struct {
	http *HTTPClient
}

func NewUserClient(http *HTTPClient) *UserClient {
	return &UserClient{http: http}
}

func (c *UserClient) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/users/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var users []model.User
	if err := resp.DecodeJSON(&users); err != nil {
		return nil, fmt.Errorf("could not decode user list:\n%s\n%w", resp.ToString(), err)
	}
	return users, nil
}

func (c *UserClient) Get(ctx context.Context, id string) (*model.User, error) {
	resp, err := c.http.GET(ctx, "/api/v1/users/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var user model.User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, fmt.Errorf("could not decode user:\n%s\n%w", resp.ToString(), err)
	}
	return &user, nil
}

func (c *UserClient) Create(ctx context.Context, payload model.UserCreate) (*model.User, error) {
	resp, err := c.http.POST(ctx, "/api/v1/users/", payload)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var user model.User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, fmt.Errorf("could not decode user:\n%s\n%w", resp.ToString(), err)
	}
	return &user, nil
}

func (c *UserClient) Update(ctx context.Context, id string, payload model.UserUpdate) (*model.User, error) {
	resp, err := c.http.PATCH(ctx, "/api/v1/users/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var user model.User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, fmt.Errorf("could not decode user:\n%s\n%w", resp.ToString(), err)
	}
	return &user, nil
}

func (c *UserClient) Delete(ctx context.Context, id string) error {
	resp, err := c.http.DELETE(ctx, "/api/v1/users/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return resp.Err()
}
