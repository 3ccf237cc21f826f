package controller

import (
	"context"

	"claresys/pkg/model"
)

// CatalogLister provides the operational classrooms the form can offer.
type CatalogLister interface {
	ListOperational(ctx context.Context) ([]model.Classroom, error)
}

// BookingCreator submits a booking request to the command side.
type BookingCreator interface {
	Create(ctx context.Context, booking *model.BookingCreate) (*model.BookingAck, error)
}
