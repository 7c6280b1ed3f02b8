package postgres

import (
	"context"
	"database/sql"

	"ticketresale/internal/domain"
)

type sellerRepository struct {
	DB dbtx
}

func NewSellerRepository(db *sql.DB) domain.SellerRepository {
	return &sellerRepository{
		DB: db,
	}
}

func (r *sellerRepository) Create(ctx context.Context, s *domain.Seller) error {
	query := `
		INSERT INTO sellers (event_id, name, price, city, whatsapp, tickets_available, ticket_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		s.EventID, s.Name, s.Price, s.City, s.WhatsApp, s.TicketsAvailable, s.TicketDetails,
	).Scan(&s.ID, &s.CreatedAt)
	return translateError(ctx, "insert seller", err, true)
}

// ListByEventID orders by price so buyers see the cheapest offer first.
func (r *sellerRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Seller, error) {
	query := `
		SELECT id, event_id, name, price, city, whatsapp, tickets_available, ticket_details, created_at
		FROM sellers
		WHERE event_id = $1
		ORDER BY price ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, translateError(ctx, "list sellers", err, false)
	}
	defer rows.Close()

	sellers := make([]*domain.Seller, 0)
	for rows.Next() {
		s := &domain.Seller{}
		var detailsNull sql.NullString
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.Price, &s.City, &s.WhatsApp, &s.TicketsAvailable, &detailsNull, &s.CreatedAt); err != nil {
			return nil, translateError(ctx, "scan seller", err, false)
		}
		if detailsNull.Valid {
			s.TicketDetails = &detailsNull.String
		}
		sellers = append(sellers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(ctx, "list sellers", err, false)
	}
	return sellers, nil
}
