package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Repository is the order history store. Create records a new order at the
// head of the customer's history; List returns it most-recent-first.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context, customerID string) ([]Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	addr, err := json.Marshal(o.Address)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, customer_id, restaurant, status, subtotal, delivery_fee, taxes, total,
                        address, payment_method, payment_id, payment_status, placed_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
  `, o.ID, o.CustomerID, o.Restaurant, string(o.Status), o.Subtotal, o.Delivery, o.Taxes, o.Total,
		addr, o.Payment.Method, o.Payment.ID, string(o.Payment.Status), o.PlacedAt); err != nil {
		return err
	}

	for i, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (order_id, position, name, unit_price, quantity)
      VALUES ($1,$2,$3,$4,$5)
    `, o.ID, i, it.Name, it.UnitPrice, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) List(ctx context.Context, customerID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, customer_id, restaurant, status, subtotal::text, delivery_fee::text, taxes::text, total::text,
           address, payment_method, payment_id, payment_status, placed_at
    FROM orders WHERE customer_id=$1
    ORDER BY placed_at DESC, id DESC
  `, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var status, payStatus string
		var subtotal, delivery, taxes, total string
		var addr []byte
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Restaurant, &status, &subtotal, &delivery, &taxes, &total,
			&addr, &o.Payment.Method, &o.Payment.ID, &payStatus, &o.PlacedAt); err != nil {
			return nil, err
		}
		o.Status = Status(status)
		o.Payment.Status = PaymentStatus(payStatus)
		if err := json.Unmarshal(addr, &o.Address); err != nil {
			return nil, err
		}
		if err := parseMoney(&o, subtotal, delivery, taxes, total); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	for i := range out {
		items, err := r.items(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PGRepo) items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT name, unit_price::text, quantity
    FROM order_items WHERE order_id=$1
    ORDER BY position
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.Name, &price, &it.Quantity); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func parseMoney(o *Order, subtotal, delivery, taxes, total string) error {
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return err
	}
	if o.Delivery, err = decimal.NewFromString(delivery); err != nil {
		return err
	}
	if o.Taxes, err = decimal.NewFromString(taxes); err != nil {
		return err
	}
	o.Total, err = decimal.NewFromString(total)
	return err
}
