package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"ticketresale/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventColumns = []string{"id", "name", "date", "city", "zip_code", "created_at", "seller_count"}

func ptr[T any](v T) *T { return &v }

func TestBuildListEventsQuery(t *testing.T) {
	may1 := domain.Date{Year: 2024, Month: time.May, Day: 1}

	tests := []struct {
		name        string
		filter      domain.EventFilter
		wantWhere   string
		wantNoWhere bool
		wantArgs    []any
		wantSuffix  string
	}{
		{
			name:        "no filter",
			filter:      domain.EventFilter{},
			wantNoWhere: true,
			wantArgs:    nil,
			wantSuffix:  "ORDER BY e.date ASC, e.id ASC",
		},
		{
			name:       "name and city combine with AND",
			filter:     domain.EventFilter{Name: "jazz", City: "austin"},
			wantWhere:  "WHERE e.city ILIKE $1 AND e.name ILIKE $2",
			wantArgs:   []any{"%austin%", "%jazz%"},
			wantSuffix: "ORDER BY e.date ASC, e.id ASC",
		},
		{
			name:       "date and id are exact",
			filter:     domain.EventFilter{Date: &may1, ID: ptr(int64(2))},
			wantWhere:  "WHERE e.date = $1 AND e.id = $2",
			wantArgs:   []any{may1, int64(2)},
			wantSuffix: "ORDER BY e.date ASC, e.id ASC",
		},
		{
			name:       "all fields",
			filter:     domain.EventFilter{City: "a", Date: &may1, Name: "b", ID: ptr(int64(7))},
			wantWhere:  "WHERE e.city ILIKE $1 AND e.date = $2 AND e.name ILIKE $3 AND e.id = $4",
			wantArgs:   []any{"%a%", may1, "%b%", int64(7)},
			wantSuffix: "ORDER BY e.date ASC, e.id ASC",
		},
		{
			name:       "like wildcards are escaped",
			filter:     domain.EventFilter{Name: `50%_off\`},
			wantWhere:  "WHERE e.name ILIKE $1",
			wantArgs:   []any{`%50\%\_off\\%`},
			wantSuffix: "ORDER BY e.date ASC, e.id ASC",
		},
		{
			name:       "pagination",
			filter:     domain.EventFilter{City: "denver", Pagination: &domain.PaginationParams{Page: 3, PageSize: 10}},
			wantWhere:  "WHERE e.city ILIKE $1",
			wantArgs:   []any{"%denver%", 10, 20},
			wantSuffix: "LIMIT $2 OFFSET $3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListEventsQuery(tt.filter)
			assert.Contains(t, query, "LEFT JOIN sellers s ON s.event_id = e.id")
			assert.Contains(t, query, "GROUP BY e.id")
			if tt.wantNoWhere {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, tt.wantWhere)
			}
			assert.True(t, regexp.MustCompile(regexp.QuoteMeta(tt.wantSuffix)+`$`).MatchString(query), "query ends with %q:\n%s", tt.wantSuffix, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			event: &domain.Event{
				Name:    "Jazz Night",
				Date:    domain.Date{Year: 2024, Month: time.May, Day: 1},
				City:    "Austin",
				ZipCode: ptr("78701"),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, date, city, zip_code\)`).
					WithArgs("Jazz Night", "2024-05-01", "Austin", "78701").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))
			},
			wantID: 1,
		},
		{
			name: "nil zip code is stored as NULL",
			event: &domain.Event{
				Name: "Jazz Fest",
				Date: domain.Date{Year: 2024, Month: time.May, Day: 1},
				City: "Denver",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Jazz Fest", "2024-05-01", "Denver", nil).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), created))
			},
			wantID: 2,
		},
		{
			name:  "not null violation is a validation error",
			event: &domain.Event{Date: domain.Date{Year: 2024, Month: time.May, Day: 1}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23502", Message: `null value in column "name" violates not-null constraint`})
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "connection failure",
			event: &domain.Event{Name: "Conf"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: domain.ErrStorageUnavailable,
		},
		{
			name:  "other database error",
			event: &domain.Event{Name: "Conf"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(errors.New("disk full"))
			},
			wantErr: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.Equal(t, created, tt.event.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  domain.EventFilter
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Event
		wantErr error
	}{
		{
			name:   "success with seller counts",
			filter: domain.EventFilter{Name: "jazz"},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventColumns).
					AddRow(int64(1), "Jazz Night", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "Austin", "78701", created, int64(3)).
					AddRow(int64(2), "Jazz Fest", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "Denver", nil, created, int64(0))
				mock.ExpectQuery(regexp.QuoteMeta("WHERE e.name ILIKE $1")).
					WithArgs("%jazz%").
					WillReturnRows(rows)
			},
			want: []*domain.Event{
				{ID: 1, Name: "Jazz Night", Date: domain.Date{Year: 2024, Month: time.May, Day: 1}, City: "Austin", ZipCode: ptr("78701"), CreatedAt: created, SellerCount: 3},
				{ID: 2, Name: "Jazz Fest", Date: domain.Date{Year: 2024, Month: time.May, Day: 1}, City: "Denver", CreatedAt: created, SellerCount: 0},
			},
		},
		{
			name:   "success empty",
			filter: domain.EventFilter{City: "nowhere"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.name, e.date`).
					WithArgs("%nowhere%").
					WillReturnRows(sqlmock.NewRows(eventColumns))
			},
			want: []*domain.Event{},
		},
		{
			name:   "db error",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.name, e.date`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx, tt.filter)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(1), "Jazz Night", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "Austin", nil, created, int64(2)))

		got, err := NewEventRepository(db).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "2024-05-01", got.Date.String())
		assert.Nil(t, got.ZipCode)
		assert.Equal(t, 2, got.SellerCount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
			WithArgs(int64(9999)).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		got, err := NewEventRepository(db).GetByID(ctx, 9999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NotErrorIs(t, err, domain.ErrStorage)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure is not not-found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
			WithArgs(int64(1)).
			WillReturnError(errors.New("relation \"events\" does not exist"))

		got, err := NewEventRepository(db).GetByID(ctx, 1)
		require.ErrorIs(t, err, domain.ErrStorage)
		require.NotErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
	})
}
