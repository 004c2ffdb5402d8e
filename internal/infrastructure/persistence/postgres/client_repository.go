package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// ClientRepository persists clients in the clients table. Passport and
// employment documents are stored as jsonb. It implements
// port.ClientRepository.
type ClientRepository struct {
	db Database
}

// NewClientRepository creates a client repository on top of the given database.
func NewClientRepository(db Database) *ClientRepository {
	return &ClientRepository{db: db}
}

const insertClientSQL = `
INSERT INTO clients (
	first_name, last_name, middle_name, birth_date, email,
	gender, marital_status, dependent_amount, passport, employment, account
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

const updateClientSQL = `
UPDATE clients SET
	first_name = $2, last_name = $3, middle_name = $4, birth_date = $5,
	email = $6, gender = $7, marital_status = $8, dependent_amount = $9,
	passport = $10, employment = $11, account = $12
WHERE id = $1`

const selectClientSQL = `
SELECT id, first_name, last_name, middle_name, birth_date, email,
	gender, marital_status, dependent_amount, passport, employment, account
FROM clients
WHERE id = $1`

// Save inserts the client when its id is zero and updates it otherwise. The
// returned client carries the persisted id.
func (r *ClientRepository) Save(ctx context.Context, client model.Client) (model.Client, error) {
	passport, employment, err := marshalClientDocuments(client)
	if err != nil {
		return model.Client{}, err
	}

	gender := nullableEnum(client.Gender)
	marital := nullableEnum(client.MaritalStatus)
	account := nullableString(client.Account)

	if client.ID == 0 {
		row := r.db.QueryRow(ctx, insertClientSQL,
			client.FirstName, client.LastName, client.MiddleName,
			client.BirthDate, client.Email,
			gender, marital, client.DependentAmount,
			passport, employment, account)
		if err := row.Scan(&client.ID); err != nil {
			return model.Client{}, fmt.Errorf("insert client: %w", err)
		}
		return client, nil
	}

	if _, err := r.db.Exec(ctx, updateClientSQL,
		client.ID,
		client.FirstName, client.LastName, client.MiddleName,
		client.BirthDate, client.Email,
		gender, marital, client.DependentAmount,
		passport, employment, account); err != nil {
		return model.Client{}, fmt.Errorf("update client %d: %w", client.ID, err)
	}
	return client, nil
}

// FindByID loads a client by id.
func (r *ClientRepository) FindByID(ctx context.Context, id int64) (model.Client, error) {
	row := r.db.QueryRow(ctx, selectClientSQL, id)

	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, fmt.Errorf("client %d: %w", id, err)
		}
		return model.Client{}, fmt.Errorf("select client %d: %w", id, err)
	}
	return client, nil
}

// scanClient reads one clients row. The scan order must match selectClientSQL.
func scanClient(row pgx.Row) (model.Client, error) {
	var (
		client        model.Client
		gender        *string
		marital       *string
		account       *string
		passportDoc   []byte
		employmentDoc []byte
	)

	if err := row.Scan(
		&client.ID, &client.FirstName, &client.LastName, &client.MiddleName,
		&client.BirthDate, &client.Email,
		&gender, &marital, &client.DependentAmount,
		&passportDoc, &employmentDoc, &account,
	); err != nil {
		return model.Client{}, err
	}

	if gender != nil {
		g, err := valueobject.NewGender(*gender)
		if err != nil {
			return model.Client{}, fmt.Errorf("stored gender: %w", err)
		}
		client.Gender = g
	}
	if marital != nil {
		m, err := valueobject.NewMaritalStatus(*marital)
		if err != nil {
			return model.Client{}, fmt.Errorf("stored marital status: %w", err)
		}
		client.MaritalStatus = m
	}
	if account != nil {
		client.Account = *account
	}
	if err := json.Unmarshal(passportDoc, &client.Passport); err != nil {
		return model.Client{}, fmt.Errorf("decode passport document: %w", err)
	}
	if employmentDoc != nil {
		if err := json.Unmarshal(employmentDoc, &client.Employment); err != nil {
			return model.Client{}, fmt.Errorf("decode employment document: %w", err)
		}
	}
	return client, nil
}

func marshalClientDocuments(client model.Client) (passport, employment []byte, err error) {
	passport, err = json.Marshal(client.Passport)
	if err != nil {
		return nil, nil, fmt.Errorf("encode passport document: %w", err)
	}
	if !client.Employment.IsZero() {
		employment, err = json.Marshal(client.Employment)
		if err != nil {
			return nil, nil, fmt.Errorf("encode employment document: %w", err)
		}
	}
	return passport, employment, nil
}

// nullableEnum maps a zero value object to SQL NULL.
func nullableEnum(v interface{ String() string }) *string {
	s := v.String()
	if s == "" {
		return nil
	}
	return &s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
