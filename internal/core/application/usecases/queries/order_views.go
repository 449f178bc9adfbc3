package queries

import (
	"context"
	"database/sql"
	"time"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemView struct {
	Name     string       `json:"item_name"`
	Price    kernel.Money `json:"price"`
	Quantity int          `json:"quantity"`
}

// OrderView is an order with its participants' names and its items.
type OrderView struct {
	ID             kernel.UUID     `json:"id"`
	CustomerID     kernel.UUID     `json:"customer_id"`
	CustomerName   string          `json:"customer"`
	RestaurantID   kernel.UUID     `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant"`
	AgentID        *kernel.UUID    `json:"agent_id"`
	AgentName      *string         `json:"agent"`
	Status         string          `json:"status"`
	TotalPrice     kernel.Money    `json:"total_price"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []OrderItemView `json:"items"`
}

const orderViewSelect = `
	SELECT
		o.id,
		o.customer_id,
		c.name,
		o.restaurant_id,
		r.name,
		o.agent_id,
		a.name,
		o.status,
		o.total_price,
		o.created_at
	FROM orders o
	JOIN users c ON c.id = o.customer_id
	JOIN restaurants r ON r.id = o.restaurant_id
	LEFT JOIN users a ON a.id = o.agent_id
`

// loadOrderViews runs orderViewSelect with the given filter and attaches
// the items of every returned order.
func loadOrderViews(ctx context.Context, db *gorm.DB, filter string, args ...any) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(orderViewSelect+filter, args...).Rows()
	if err != nil {
		return nil, pgerr.Classify("read orders", err)
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id, customerID, restaurantID uuid.UUID
			agentID                      uuid.NullUUID
			agentName                    sql.NullString
			total                        decimal.Decimal
			v                            OrderView
		)
		if err = rows.Scan(
			&id,
			&customerID,
			&v.CustomerName,
			&restaurantID,
			&v.RestaurantName,
			&agentID,
			&agentName,
			&v.Status,
			&total,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if v.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if agentID.Valid {
			aID, aErr := kernel.UUIDFromBytes(agentID.UUID[:])
			if aErr != nil {
				return nil, aErr
			}
			v.AgentID = &aID
		}
		if agentName.Valid {
			name := agentName.String
			v.AgentName = &name
		}
		if v.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		v.CreatedAt = v.CreatedAt.UTC()
		v.Items = make([]OrderItemView, 0)

		index[id] = len(views)
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, pgerr.Classify("read orders", err)
	}

	if len(views) == 0 {
		return views, nil
	}
	if err = attachItems(ctx, db, views, index); err != nil {
		return nil, err
	}
	return views, nil
}

func attachItems(ctx context.Context, db *gorm.DB, views []OrderView, index map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, item_name, price, quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return pgerr.Classify("read order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			price   decimal.Decimal
			item    OrderItemView
		)
		if err = rows.Scan(&orderID, &item.Name, &price, &item.Quantity); err != nil {
			return err
		}
		if item.Price, err = kernel.NewMoney(price); err != nil {
			return err
		}
		i, ok := index[orderID]
		if !ok {
			continue
		}
		views[i].Items = append(views[i].Items, item)
	}
	return rows.Err()
}
