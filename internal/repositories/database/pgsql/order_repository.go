package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/models"
	"github.com/finbooks/erp_ledger_app/internal/utils/mapping"
	"github.com/finbooks/erp_ledger_app/internal/utils/pagination"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for sales order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `
	order_id, company_code, order_number, sequence_no, customer_id, item_id,
	order_date, payment_terms, currency_code, exchange_rate,
	quantity, price, discount_pct, tax_pct, withholding_tax_pct, charges, advance,
	discount_amt, tax_amount, withholding_tax_amt, net_amt_after_tax, net_ar,
	net_payment_due, carry_forward_advance, settlement_status,
	status, invoice_date, due_date,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID, &m.CompanyCode, &m.OrderNumber, &m.SequenceNo, &m.CustomerID, &m.ItemID,
		&m.OrderDate, &m.PaymentTerms, &m.CurrencyCode, &m.ExchangeRate,
		&m.Quantity, &m.Price, &m.DiscountPct, &m.TaxPct, &m.WithholdingTaxPct, &m.Charges, &m.Advance,
		&m.DiscountAmt, &m.TaxAmount, &m.WithholdingTaxAmt, &m.NetAmtAfterTax, &m.NetAR,
		&m.NetPaymentDue, &m.CarryForwardAdvance, &m.SettlementStatus,
		&m.Status, &m.InvoiceDate, &m.DueDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveOrder persists a new order.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
		INSERT INTO sales_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrderID, m.CompanyCode, m.OrderNumber, m.SequenceNo, m.CustomerID, m.ItemID,
		m.OrderDate, m.PaymentTerms, m.CurrencyCode, m.ExchangeRate,
		m.Quantity, m.Price, m.DiscountPct, m.TaxPct, m.WithholdingTaxPct, m.Charges, m.Advance,
		m.DiscountAmt, m.TaxAmount, m.WithholdingTaxAmt, m.NetAmtAfterTax, m.NetAR,
		m.NetPaymentDue, m.CarryForwardAdvance, m.SettlementStatus,
		m.Status, m.InvoiceDate, m.DueDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert order "+m.OrderID, err)
	}
	return nil
}

// updateOrderQuery writes every mutable column. Number and sequence columns
// are immutable after creation and deliberately absent.
const updateOrderQuery = `
	UPDATE sales_orders
	SET customer_id = $2, item_id = $3, order_date = $4, payment_terms = $5,
		exchange_rate = $6, quantity = $7, price = $8, discount_pct = $9,
		tax_pct = $10, withholding_tax_pct = $11, charges = $12, advance = $13,
		discount_amt = $14, tax_amount = $15, withholding_tax_amt = $16,
		net_amt_after_tax = $17, net_ar = $18, net_payment_due = $19,
		carry_forward_advance = $20, settlement_status = $21,
		status = $22, invoice_date = $23, due_date = $24,
		last_updated_at = $25, last_updated_by = $26
	WHERE order_id = $1;
`

// UpdateOrder writes an order's financial inputs, derived fields, status and
// date stamps.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	tag, err := r.Pool.Exec(ctx, updateOrderQuery, orderUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order "+m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("order " + m.OrderID + " not found for update")
	}
	return nil
}

func orderUpdateArgs(m models.Order) []interface{} {
	return []interface{}{
		m.OrderID, m.CustomerID, m.ItemID, m.OrderDate, m.PaymentTerms,
		m.ExchangeRate, m.Quantity, m.Price, m.DiscountPct,
		m.TaxPct, m.WithholdingTaxPct, m.Charges, m.Advance,
		m.DiscountAmt, m.TaxAmount, m.WithholdingTaxAmt,
		m.NetAmtAfterTax, m.NetAR, m.NetPaymentDue,
		m.CarryForwardAdvance, m.SettlementStatus,
		m.Status, m.InvoiceDate, m.DueDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// AddPayment inserts the payment and writes the recomputed derived fields on
// the order within one transaction.
func (r *PgxOrderRepository) AddPayment(ctx context.Context, payment domain.Payment, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	p := mapping.ToModelPayment(payment)
	paymentQuery := `
		INSERT INTO order_payments (payment_id, order_id, amount, payment_date, reference,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		p.PaymentID, p.OrderID, p.Amount, p.PaymentDate, p.Reference,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+p.PaymentID, err)
	}

	m := mapping.ToModelOrder(order)
	tag, err := tx.Exec(ctx, updateOrderQuery, orderUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order "+m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("order " + m.OrderID + " not found for update")
	}

	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves an order with its payments.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM sales_orders WHERE order_id = $1;`
	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("order " + orderID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find order "+orderID, err)
	}
	order := mapping.ToDomainOrder(m)

	paymentQuery := `
		SELECT payment_id, order_id, amount, payment_date, reference,
			created_at, created_by, last_updated_at, last_updated_by
		FROM order_payments
		WHERE order_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, paymentQuery, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for order "+orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.PaymentID, &p.OrderID, &p.Amount, &p.PaymentDate, &p.Reference,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment", err)
		}
		order.Payments = append(order.Payments, mapping.ToDomainPayment(p))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read payments for order "+orderID, err)
	}

	return &order, nil
}

// ListOrders retrieves a page of orders ordered by order date then creation
// time, newest first, with token-based continuation.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, companyCode string, limit int, nextToken *string) ([]domain.Order, *string, error) {
	fetchLimit := limit + 1
	args := []interface{}{companyCode, fetchLimit}
	query := `SELECT ` + orderColumns + ` FROM sales_orders WHERE ($1 = '' OR company_code = $1)`

	if nextToken != nil && *nextToken != "" {
		orderDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (order_date, created_at) < ($3, $4)`
		args = append(args, orderDate, createdAt)
	}
	query += ` ORDER BY order_date DESC, created_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan order", err)
		}
		orders = append(orders, mapping.ToDomainOrder(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list orders", err)
	}

	var token *string
	if len(orders) == fetchLimit {
		orders = orders[:limit]
		last := orders[limit-1]
		t := pagination.EncodeToken(last.OrderDate, last.CreatedAt)
		token = &t
	}
	return orders, token, nil
}
