package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ticketresale/internal/domain"
)

const selectEventsQuery = `
		SELECT e.id, e.name, e.date, e.city, e.zip_code, e.created_at, COUNT(s.id) AS seller_count
		FROM events e
		LEFT JOIN sellers s ON s.event_id = e.id`

type eventRepository struct {
	DB dbtx
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date, city, zip_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Date, e.City, e.ZipCode).Scan(&e.ID, &e.CreatedAt)
	return translateError(ctx, "insert event", err, true)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	events, err := r.List(ctx, domain.EventFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return events[0], nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query, args := buildListEventsQuery(filter)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(ctx, "list events", err, false)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var zipNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.City, &zipNull, &e.CreatedAt, &e.SellerCount); err != nil {
			return nil, translateError(ctx, "scan event", err, false)
		}
		if zipNull.Valid {
			e.ZipCode = &zipNull.String
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(ctx, "list events", err, false)
	}
	return events, nil
}

// buildListEventsQuery appends one AND condition per set filter field.
// Text filters are case-insensitive substring matches with LIKE wildcards in the input escaped.
func buildListEventsQuery(filter domain.EventFilter) (string, []any) {
	var conditions []string
	var args []any
	n := 1
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("e.city ILIKE $%d", n))
		args = append(args, containsPattern(filter.City))
		n++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("e.date = $%d", n))
		args = append(args, *filter.Date)
		n++
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("e.name ILIKE $%d", n))
		args = append(args, containsPattern(filter.Name))
		n++
	}
	if filter.ID != nil {
		conditions = append(conditions, fmt.Sprintf("e.id = $%d", n))
		args = append(args, *filter.ID)
		n++
	}

	var b strings.Builder
	b.WriteString(selectEventsQuery)
	if len(conditions) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString("\n\t\tGROUP BY e.id\n\t\tORDER BY e.date ASC, e.id ASC")
	if p := filter.Pagination; p != nil && p.PageSize > 0 {
		fmt.Fprintf(&b, "\n\t\tLIMIT $%d OFFSET $%d", n, n+1)
		args = append(args, p.PageSize, p.Offset())
	}
	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
