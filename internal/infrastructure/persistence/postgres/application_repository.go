package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// ApplicationRepository persists the application aggregate. The applied offer
// and the status history are stored as jsonb documents; the client and credit
// live in their own tables and are referenced by id.
//
// Updates use optimistic locking: every write bumps the version column and
// only succeeds against the version it loaded. It implements
// port.ApplicationRepository.
type ApplicationRepository struct {
	db Database
}

// NewApplicationRepository creates an application repository on top of the
// given database.
func NewApplicationRepository(db Database) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const insertApplicationSQL = `
INSERT INTO applications (
	client_id, credit_id, status, creation_date,
	applied_offer, sign_date, ses_code, status_history, version
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

const updateApplicationSQL = `
UPDATE applications SET
	client_id = $2, credit_id = $3, status = $4,
	applied_offer = $5, sign_date = $6, ses_code = $7,
	status_history = $8, version = version + 1
WHERE id = $1 AND version = $9`

const selectApplicationSQL = `
SELECT id, client_id, credit_id, status, creation_date,
	applied_offer, sign_date, ses_code, status_history, version
FROM applications
WHERE id = $1`

// Save inserts the application when its id is zero and updates it otherwise.
// An update that loses the optimistic-lock race fails with
// valueobject.ErrVersionConflict. The returned aggregate carries the
// persisted id and version.
func (r *ApplicationRepository) Save(ctx context.Context, app model.Application) (model.Application, error) {
	offerDoc, historyDoc, err := marshalApplicationDocuments(app)
	if err != nil {
		return model.Application{}, err
	}

	var creditID *int64
	if credit := app.Credit(); credit != nil {
		creditID = &credit.ID
	}

	if app.ID() == 0 {
		row := r.db.QueryRow(ctx, insertApplicationSQL,
			app.Client().ID, creditID, app.Status().String(), app.CreationDate(),
			offerDoc, app.SignDate(), app.SesCode(), historyDoc, app.Version())

		var id int64
		if err := row.Scan(&id); err != nil {
			return model.Application{}, fmt.Errorf("insert application: %w", err)
		}
		return reconstructWith(app, id, app.Version()), nil
	}

	tag, err := r.db.Exec(ctx, updateApplicationSQL,
		app.ID(),
		app.Client().ID, creditID, app.Status().String(),
		offerDoc, app.SignDate(), app.SesCode(), historyDoc,
		app.Version())
	if err != nil {
		return model.Application{}, fmt.Errorf("update application %d: %w", app.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		return model.Application{}, fmt.Errorf("update application %d: %w", app.ID(), valueobject.ErrVersionConflict)
	}
	return reconstructWith(app, app.ID(), app.Version()+1), nil
}

// FindByID loads the aggregate with its client and, when present, its credit.
// A missing row fails with valueobject.ErrApplicationNotFound.
func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (model.Application, error) {
	var (
		appID        int64
		clientID     int64
		creditID     *int64
		status       string
		creationDate time.Time
		offerDoc     []byte
		signDate     *time.Time
		sesCode      *int
		historyDoc   []byte
		version      int
	)

	row := r.db.QueryRow(ctx, selectApplicationSQL, id)
	if err := row.Scan(
		&appID, &clientID, &creditID, &status, &creationDate,
		&offerDoc, &signDate, &sesCode, &historyDoc, &version,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, fmt.Errorf("application %d: %w", id, valueobject.ErrApplicationNotFound)
		}
		return model.Application{}, fmt.Errorf("select application %d: %w", id, err)
	}

	appStatus, err := valueobject.NewApplicationStatus(status)
	if err != nil {
		return model.Application{}, fmt.Errorf("stored application status: %w", err)
	}

	var appliedOffer *model.Offer
	if offerDoc != nil {
		appliedOffer = &model.Offer{}
		if err := json.Unmarshal(offerDoc, appliedOffer); err != nil {
			return model.Application{}, fmt.Errorf("decode applied offer document: %w", err)
		}
	}

	var history []model.StatusHistoryElement
	if err := json.Unmarshal(historyDoc, &history); err != nil {
		return model.Application{}, fmt.Errorf("decode status history document: %w", err)
	}

	client, err := scanClient(r.db.QueryRow(ctx, selectClientSQL, clientID))
	if err != nil {
		return model.Application{}, fmt.Errorf("load client %d for application %d: %w", clientID, appID, err)
	}

	var credit *model.Credit
	if creditID != nil {
		loaded, err := scanCredit(r.db.QueryRow(ctx, selectCreditSQL, *creditID))
		if err != nil {
			return model.Application{}, fmt.Errorf("load credit %d for application %d: %w", *creditID, appID, err)
		}
		credit = &loaded
	}

	return model.ReconstructApplication(
		appID, client, credit, appStatus, creationDate,
		appliedOffer, signDate, sesCode, history, version,
	), nil
}

// reconstructWith stamps the persisted id and version onto the aggregate.
func reconstructWith(app model.Application, id int64, version int) model.Application {
	return model.ReconstructApplication(
		id, app.Client(), app.Credit(), app.Status(), app.CreationDate(),
		app.AppliedOffer(), app.SignDate(), app.SesCode(), app.StatusHistory(), version,
	)
}

func marshalApplicationDocuments(app model.Application) (offer, history []byte, err error) {
	if applied := app.AppliedOffer(); applied != nil {
		offer, err = json.Marshal(applied)
		if err != nil {
			return nil, nil, fmt.Errorf("encode applied offer document: %w", err)
		}
	}
	history, err = json.Marshal(app.StatusHistory())
	if err != nil {
		return nil, nil, fmt.Errorf("encode status history document: %w", err)
	}
	return offer, history, nil
}
