package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// CreditRepository persists credits. The payment schedule is stored as a
// jsonb document. It implements port.CreditRepository.
type CreditRepository struct {
	db Database
}

// NewCreditRepository creates a credit repository on top of the given database.
func NewCreditRepository(db Database) *CreditRepository {
	return &CreditRepository{db: db}
}

const insertCreditSQL = `
INSERT INTO credits (
	amount, term, monthly_payment, rate, psk,
	payment_schedule, is_insurance_enabled, is_salary_client, credit_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

const updateCreditSQL = `
UPDATE credits SET
	amount = $2, term = $3, monthly_payment = $4, rate = $5, psk = $6,
	payment_schedule = $7, is_insurance_enabled = $8, is_salary_client = $9,
	credit_status = $10
WHERE id = $1`

const selectCreditSQL = `
SELECT id, amount, term, monthly_payment, rate, psk,
	payment_schedule, is_insurance_enabled, is_salary_client, credit_status
FROM credits
WHERE id = $1`

// Save inserts the credit when its id is zero and updates it otherwise. The
// returned credit carries the persisted id.
func (r *CreditRepository) Save(ctx context.Context, credit model.Credit) (model.Credit, error) {
	schedule, err := json.Marshal(credit.PaymentSchedule)
	if err != nil {
		return model.Credit{}, fmt.Errorf("encode payment schedule document: %w", err)
	}

	if credit.ID == 0 {
		row := r.db.QueryRow(ctx, insertCreditSQL,
			credit.Amount, credit.Term, credit.MonthlyPayment, credit.Rate, credit.PSK,
			schedule,
			credit.AdditionalServices.IsInsuranceEnabled,
			credit.AdditionalServices.IsSalaryClient,
			credit.Status.String())
		if err := row.Scan(&credit.ID); err != nil {
			return model.Credit{}, fmt.Errorf("insert credit: %w", err)
		}
		return credit, nil
	}

	if _, err := r.db.Exec(ctx, updateCreditSQL,
		credit.ID,
		credit.Amount, credit.Term, credit.MonthlyPayment, credit.Rate, credit.PSK,
		schedule,
		credit.AdditionalServices.IsInsuranceEnabled,
		credit.AdditionalServices.IsSalaryClient,
		credit.Status.String()); err != nil {
		return model.Credit{}, fmt.Errorf("update credit %d: %w", credit.ID, err)
	}
	return credit, nil
}

// scanCredit reads one credits row. The scan order must match selectCreditSQL.
func scanCredit(row pgx.Row) (model.Credit, error) {
	var (
		credit      model.Credit
		scheduleDoc []byte
		status      string
	)

	if err := row.Scan(
		&credit.ID, &credit.Amount, &credit.Term,
		&credit.MonthlyPayment, &credit.Rate, &credit.PSK,
		&scheduleDoc,
		&credit.AdditionalServices.IsInsuranceEnabled,
		&credit.AdditionalServices.IsSalaryClient,
		&status,
	); err != nil {
		return model.Credit{}, err
	}

	creditStatus, err := valueobject.NewCreditStatus(status)
	if err != nil {
		return model.Credit{}, fmt.Errorf("stored credit status: %w", err)
	}
	credit.Status = creditStatus

	if err := json.Unmarshal(scheduleDoc, &credit.PaymentSchedule); err != nil {
		return model.Credit{}, fmt.Errorf("decode payment schedule document: %w", err)
	}
	return credit, nil
}
