package controller

import (
	"context"
	"sync"
	"time"

	"claresys/internal/booking/validator"
	apierrors "claresys/pkg/errors"
	"claresys/pkg/logger"
	"claresys/pkg/model"
	"claresys/pkg/sanitizer"
)

// State names the phases of the booking form lifecycle.
type State string

const (
	StateIdle           State = "IDLE"
	StateLoadingCatalog State = "LOADING_CATALOG"
	StateReady          State = "READY"
	StateSubmitting     State = "SUBMITTING"
	StateAccepted       State = "ACCEPTED"
	StateRejected       State = "REJECTED"
)

const (
	defaultStartHour = 7
	defaultEndHour   = 8
)

// Controller drives one booking form session from catalog load through
// submission outcome. All methods are safe for concurrent use; the network
// calls in LoadCatalog and Submit run without holding the lock so readers
// stay responsive while a request is in flight.
type Controller struct {
	catalog  CatalogLister
	bookings BookingCreator
	log      *logger.Logger

	mu         sync.Mutex
	state      State
	rooms      []model.Classroom
	draft      validator.Draft
	userID     string
	ack        *model.BookingAck
	lastErr    error
	generation uint64
	closed     bool
}

func New(catalog CatalogLister, bookings BookingCreator, userID string, log *logger.Logger) *Controller {
	c := &Controller{
		catalog:  catalog,
		bookings: bookings,
		userID:   userID,
		log:      log,
		state:    StateIdle,
	}
	c.draft = defaultDraft(time.Now())
	return c
}

func defaultDraft(now time.Time) validator.Draft {
	return validator.Draft{
		Date:        now,
		StartHour:   defaultStartHour,
		StartMinute: 0,
		EndHour:     defaultEndHour,
		EndMinute:   0,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Draft() validator.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) Catalog() []model.Classroom {
	c.mu.Lock()
	defer c.mu.Unlock()
	rooms := make([]model.Classroom, len(c.rooms))
	copy(rooms, c.rooms)
	return rooms
}

// Ack returns the acceptance payload, valid only in StateAccepted.
func (c *Controller) Ack() *model.BookingAck {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ack
}

// Err returns the rejection reason, valid only in StateRejected. The
// catalog-load error is also surfaced here when the controller entered
// Ready in degraded mode.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LoadCatalog fetches the operational classrooms and moves the controller
// to Ready. A fetch failure still lands in Ready with an empty catalog, so
// the form renders in degraded mode instead of hanging in a loading state.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrNotReady
	}
	c.state = StateLoadingCatalog
	gen := c.generation
	c.mu.Unlock()

	rooms, err := c.catalog.ListOperational(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return ErrClosed
	}

	c.state = StateReady
	if err != nil {
		c.rooms = nil
		c.lastErr = err
		c.log.Warn("Catalog load failed, entering degraded mode", "error", err)
		return nil
	}

	c.rooms = rooms
	c.lastErr = nil
	if len(rooms) > 0 && c.draft.ClassroomID == "" {
		// Preselect the first operational classroom in catalog order.
		c.draft.ClassroomID = rooms[0].ID
	}

	c.log.Info("Catalog loaded", "classrooms", len(rooms))
	return nil
}

func (c *Controller) SetClassroom(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.ClassroomID = id
}

func (c *Controller) SetDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Date = date
}

func (c *Controller) SetStart(hour, minute int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.StartHour = hour
	c.draft.StartMinute = minute
}

func (c *Controller) SetEnd(hour, minute int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.EndHour = hour
	c.draft.EndMinute = minute
}

func (c *Controller) SetSubject(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Subject = subject
}

// ResetTimes restores the default 07:00 to 08:00 slot. This is the only
// path that rewrites the time fields; outcomes never touch them.
func (c *Controller) ResetTimes() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.StartHour = defaultStartHour
	c.draft.StartMinute = 0
	c.draft.EndHour = defaultEndHour
	c.draft.EndMinute = 0
}

// CanSubmit re-derives the submission gate from the current draft and
// catalog. It is false outside StateReady regardless of the draft.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return false
	}
	return validator.CanSubmit(c.draft, c.rooms)
}

// Submit sends the draft to the booking collaborator. Only one submission
// may be in flight: a second call while Submitting returns ErrNotReady.
// Responses arriving after Close are discarded.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateReady {
		c.mu.Unlock()
		return ErrNotReady
	}
	if !validator.CanSubmit(c.draft, c.rooms) {
		c.mu.Unlock()
		return ErrDraftInvalid
	}

	c.state = StateSubmitting
	gen := c.generation
	req := &model.BookingCreate{
		UserID:      c.userID,
		ClassroomID: c.draft.ClassroomID,
		StartTime:   c.draft.StartTimestamp(),
		EndTime:     c.draft.EndTimestamp(),
		Subject:     sanitizer.Subject(c.draft.Subject),
	}
	c.mu.Unlock()

	ack, err := c.bookings.Create(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		c.log.Debug("Discarding submission response after close")
		return ErrClosed
	}

	if err != nil {
		c.state = StateRejected
		c.lastErr = err
		if apierrors.IsConflict(err) {
			c.log.Info("Booking rejected, slot already taken", "classroom_id", req.ClassroomID)
		} else {
			c.log.Warn("Booking submission failed", "error", err)
		}
		return nil
	}

	c.state = StateAccepted
	c.ack = ack
	c.lastErr = nil
	c.log.Info("Booking accepted", "booking_id", ack.ID, "status", ack.Status)
	return nil
}

// Acknowledge consumes an outcome and returns the form to Ready. The draft
// survives unchanged so a rejected request can be adjusted and resent.
func (c *Controller) Acknowledge() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state != StateAccepted && c.state != StateRejected {
		return ErrNotReady
	}
	c.state = StateReady
	c.ack = nil
	c.lastErr = nil
	return nil
}

// Close ends the form session. Any in-flight response is discarded when it
// eventually arrives.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	c.log.Debug("Booking controller closed")
}
