package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printcraft/printcraft-api/internal/model"
)

type CartRepository interface {
	GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
}

type pgCartRepo struct{ pool *pgxpool.Pool }

func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &pgCartRepo{pool: pool}
}

func (r *pgCartRepo) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart := &model.Cart{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, tax_rate, subtotal, tax_amount, shipping_cost, discount_amount, discount_code, total, lock_version, created_at, updated_at
		 FROM carts WHERE user_id = $1`, userID,
	).Scan(&cart.ID, &cart.UserID, &cart.TaxRate, &cart.Subtotal, &cart.TaxAmount,
		&cart.ShippingCost, &cart.DiscountAmount, &cart.DiscountCode, &cart.Total,
		&cart.LockVersion, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get cart: %w", err)
		}
		// Carts are created lazily on first read.
		cart.ID = uuid.New()
		cart.UserID = userID
		err = r.pool.QueryRow(ctx,
			`INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())
			 RETURNING created_at, updated_at`,
			cart.ID, cart.UserID,
		).Scan(&cart.CreatedAt, &cart.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("create cart: %w", err)
		}
		return cart, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, cart_id, product_id, design_id, project_id, quantity, size, color, customization, unit_price, total_price, created_at, updated_at
		 FROM cart_items WHERE cart_id = $1 ORDER BY position`, cart.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		var custom []byte
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.DesignID, &item.ProjectID,
			&item.Quantity, &item.Size, &item.Color, &custom, &item.UnitPrice, &item.TotalPrice,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		if len(custom) > 0 {
			if err := json.Unmarshal(custom, &item.Customization); err != nil {
				return nil, fmt.Errorf("decode customization: %w", err)
			}
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, nil
}

// Save persists the whole cart document in one transaction. The totals row
// is updated with a compare-and-swap on lock_version; a miss means another
// request saved the cart since it was read and surfaces as
// ErrVersionConflict.
func (r *pgCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`UPDATE carts SET tax_rate=$2, subtotal=$3, tax_amount=$4, shipping_cost=$5,
		 discount_amount=$6, discount_code=$7, total=$8, lock_version=lock_version+1, updated_at=NOW()
		 WHERE id=$1 AND lock_version=$9`,
		cart.ID, cart.TaxRate, cart.Subtotal, cart.TaxAmount, cart.ShippingCost,
		cart.DiscountAmount, cart.DiscountCode, cart.Total, cart.LockVersion,
	)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	cart.LockVersion++

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.CartID = cart.ID
		custom, err := json.Marshal(item.Customization)
		if err != nil {
			return fmt.Errorf("encode customization: %w", err)
		}
		// Lines are reinserted in slice order; position keeps reads stable
		// since every row in the transaction shares the same NOW().
		_, err = tx.Exec(ctx,
			`INSERT INTO cart_items (id, cart_id, product_id, design_id, project_id, quantity, size, color, customization, unit_price, total_price, position, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())`,
			item.ID, item.CartID, item.ProductID, item.DesignID, item.ProjectID,
			item.Quantity, item.Size, item.Color, custom, item.UnitPrice, item.TotalPrice, i,
		)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}

	return tx.Commit(ctx)
}
