package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"claresys/pkg/model"
)

type ClassroomClient struct {
	http *HTTPClient
}

func NewClassroomClient(http *HTTPClient) *ClassroomClient {
	return &ClassroomClient{http: http}
}

type ListClassroomsParams struct {
	Skip            int
	Limit           int
	OnlyOperational bool
}

func (c *ClassroomClient) List(ctx context.Context, params ListClassroomsParams) ([]model.Classroom, error) {
	q := url.Values{}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.OnlyOperational {
		q.Set("only_operational", "true")
	}

	path := "/api/v1/classrooms/"
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

	var classrooms []model.Classroom
	if err := resp.DecodeJSON(&classrooms); err != nil {
		return nil, fmt.Errorf("could not decode classroom list:\n%s\n%w", resp.ToString(), err)
	}
	return classrooms, nil
}

// ListOperational narrows the catalog to bookable rooms. The filtering also
// happens client-side so older collaborator versions that ignore the query
// parameter still yield a correct catalog.
func (c *ClassroomClient) ListOperational(ctx context.Context) ([]model.Classroom, error) {
	all, err := c.List(ctx, ListClassroomsParams{OnlyOperational: true})
	if err != nil {
		return nil, err
	}

	operational := make([]model.Classroom, 0, len(all))
	for _, room := range all {
		if room.IsOperational {
			operational = append(operational, room)
		}
	}
	return operational, nil
}

func (c *ClassroomClient) Get(ctx context.Context, id string) (*model.Classroom, error) {
	resp, err := c.http.GET(ctx, "/api/v1/classrooms/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var classroom model.Classroom
	if err := resp.DecodeJSON(&classroom); err != nil {
		return nil, fmt.Errorf("could not decode classroom:\n%s\n%w", resp.ToString(), err)
	}
	return &classroom, nil
}

func (c *ClassroomClient) Create(ctx context.Context, payload model.ClassroomCreate) (*model.Classroom, error) {
	resp, err := c.http.POST(ctx, "/api/v1/classrooms/", payload)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var classroom model.Classroom
	if err := resp.DecodeJSON(&classroom); err != nil {
		return nil, fmt.Errorf("could not decode classroom:\n%s\n%w", resp.ToString(), err)
	}
	return &classroom, nil
}

func (c *ClassroomClient) Update(ctx context.Context, id string, payload model.ClassroomUpdate) (*model.Classroom, error) {
	resp, err := c.http.PATCH(ctx, "/api/v1/classrooms/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var classroom model.Classroom
	if err := resp.DecodeJSON(&classroom); err != nil {
		return nil, fmt.Errorf("could not decode classroom:\n%s\n%w", resp.ToString(), err)
	}
	return &classroom, nil
}

func (c *ClassroomClient) Delete(ctx context.Context, id string) error {
	resp, err := c.http.DELETE(ctx, "/api/v1/classrooms/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return resp.Err()
}
