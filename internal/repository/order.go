package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printcraft-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
	SetTracking(ctx context.Context, id uuid.UUID, tracking string) error
	BeginTx(ctx context.Context) (pgx.Tx, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error
	CountAndRevenue(ctx context.Context) (int, decimal.Decimal, error)
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

// Create inserts the order and its frozen item snapshots in one
// transaction; items never change after this point.
func (r *pgOrderRepo) Create(ctx context.Context, order *model.Order) error {
	order.ID = uuid.New()
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, status, payment_status, subtotal, tax_amount, shipping_cost, discount_amount, total, shipping_address, tracking_number, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '', NOW(), NOW()) RETURNING created_at, updated_at`,
		order.ID, order.UserID, order.Status, order.PaymentStatus,
		order.Subtotal, order.TaxAmount, order.ShippingCost, order.DiscountAmount, order.Total, address,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.New()
		item.OrderID = order.ID
		custom, err := json.Marshal(item.Customization)
		if err != nil {
			return fmt.Errorf("encode customization: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name, design_id, project_id, quantity, size, color, customization, unit_price, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			item.ID, item.OrderID, item.ProductID, item.ProductName, item.DesignID, item.ProjectID,
			item.Quantity, item.Size, item.Color, custom, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order := &model.Order{}
	var address []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, status, payment_status, subtotal, tax_amount, shipping_cost, discount_amount, total, shipping_address, tracking_number, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.UserID, &order.Status, &order.PaymentStatus,
		&order.Subtotal, &order.TaxAmount, &order.ShippingCost, &order.DiscountAmount,
		&order.Total, &address, &order.TrackingNumber, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, product_name, design_id, project_id, quantity, size, color, customization, unit_price, total_price
		 FROM order_items WHERE order_id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		var custom []byte
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.DesignID, &item.ProjectID,
			&item.Quantity, &item.Size, &item.Color, &custom, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if len(custom) > 0 {
			if err := json.Unmarshal(custom, &item.Customization); err != nil {
				return nil, fmt.Errorf("decode customization: %w", err)
			}
		}
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	return order, nil
}

func (r *pgOrderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, status, payment_status, subtotal, tax_amount, shipping_cost, discount_amount, total, tracking_number, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		o.UserID = userID
		if err := rows.Scan(&o.ID, &o.Status, &o.PaymentStatus, &o.Subtotal, &o.TaxAmount,
			&o.ShippingCost, &o.DiscountAmount, &o.Total, &o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *pgOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgOrderRepo) SetTracking(ctx context.Context, id uuid.UUID, tracking string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE orders SET tracking_number = $2, updated_at = NOW() WHERE id = $1`, id, tracking,
	)
	if err != nil {
		return fmt.Errorf("set tracking number: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgOrderRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *pgOrderRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) CountAndRevenue(ctx context.Context) (int, decimal.Decimal, error) {
	var count int
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE status != 'cancelled'`,
	).Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("order stats: %w", err)
	}
	return count, revenue, nil
}
