package model

import (
	"time"

	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// StatusHistoryElement is one entry of an application's status audit trail.
type StatusHistoryElement struct {
	Status valueobject.ApplicationStatus `json:"status"`
	Date   time.Time                     `json:"date"`
}

// Application is the aggregate tracking one client's credit application
// through its lifecycle. Every mutation returns a new copy; status and
// status history are only ever updated together, so the invariant that the
// last history entry matches the current status holds by construction.
type Application struct {
	id            int64
	client        Client
	credit        *Credit
	status        valueobject.ApplicationStatus
	creationDate  time.Time
	appliedOffer  *Offer
	signDate      *time.Time
	sesCode       *int
	statusHistory []StatusHistoryElement
	version       int
}

// NewApplication creates an application for the given client in PREAPPROVAL
// status with a seeded history entry. The id stays zero until first persisted.
func NewApplication(client Client, now time.Time) Application {
	app := Application{
		client:       client,
		creationDate: now,
		version:      1,
	}
	return app.transition(valueobject.ApplicationStatusPreapproval, now)
}

// ReconstructApplication rebuilds an aggregate from persistence without
// side-effects.
func ReconstructApplication(
	id int64,
	client Client,
	credit *Credit,
	status valueobject.ApplicationStatus,
	creationDate time.Time,
	appliedOffer *Offer,
	signDate *time.Time,
	sesCode *int,
	statusHistory []StatusHistoryElement,
	version int,
) Application {
	return Application{
		id:            id,
		client:        client,
		credit:        credit,
		status:        status,
		creationDate:  creationDate,
		appliedOffer:  appliedOffer,
		signDate:      signDate,
		sesCode:       sesCode,
		statusHistory: statusHistory,
		version:       version,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ApplyOffer records the offer the client selected and moves the application
// to APPROVED. Re-applying appends another APPROVED history entry; callers
// needing exactly-once semantics must dedupe at a higher layer.
func (a Application) ApplyOffer(offer Offer, now time.Time) Application {
	next := a.transition(valueobject.ApplicationStatusApproved, now)
	next.appliedOffer = &offer
	return next
}

// DenyCalculation records a business denial from the conveyor: CC_DENIED.
func (a Application) DenyCalculation(now time.Time) Application {
	return a.transition(valueobject.ApplicationStatusCCDenied, now)
}

// ApproveCalculation attaches the calculated credit and moves the
// application to CC_APPROVED.
func (a Application) ApproveCalculation(credit Credit, now time.Time) Application {
	next := a.transition(valueobject.ApplicationStatusCCApproved, now)
	next.credit = &credit
	return next
}

// WithClient returns a copy referencing the given client record.
func (a Application) WithClient(client Client) Application {
	next := a
	next.client = client
	next.statusHistory = copyHistory(a.statusHistory)
	return next
}

// IsArchived reports whether the application is in a terminal denial status
// and accepts no further calculation attempts.
func (a Application) IsArchived() bool {
	return a.status.IsArchived()
}

func (a Application) transition(status valueobject.ApplicationStatus, now time.Time) Application {
	next := a
	next.status = status
	next.statusHistory = append(copyHistory(a.statusHistory), StatusHistoryElement{
		Status: status,
		Date:   now,
	})
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a Application) ID() int64                              { return a.id }
func (a Application) Client() Client                         { return a.client }
func (a Application) Credit() *Credit                        { return a.credit }
func (a Application) Status() valueobject.ApplicationStatus  { return a.status }
func (a Application) CreationDate() time.Time                { return a.creationDate }
func (a Application) AppliedOffer() *Offer                   { return a.appliedOffer }
func (a Application) SignDate() *time.Time                   { return a.signDate }
func (a Application) SesCode() *int                          { return a.sesCode }
func (a Application) Version() int                           { return a.version }

// StatusHistory returns a copy of the append-only status audit trail.
func (a Application) StatusHistory() []StatusHistoryElement {
	return copyHistory(a.statusHistory)
}

func copyHistory(src []StatusHistoryElement) []StatusHistoryElement {
	if len(src) == 0 {
		return nil
	}
	dst := make([]StatusHistoryElement, len(src))
	copy(dst, src)
	return dst
}
