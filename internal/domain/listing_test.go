package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventInput_Validate(t *testing.T) {
	valid := CreateEventInput{Name: "Jazz Night", Date: Date{Year: 2024, Month: time.May, Day: 1}, City: "Austin"}
	require.NoError(t, valid.Validate())

	err := CreateEventInput{Name: "  "}.Normalize().Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name is required", "date is required", "city is required"}, verr.Problems)
}

func TestNewEvent_ZipCodeOptional(t *testing.T) {
	in := CreateEventInput{Name: "A", Date: Date{Year: 2024, Month: time.May, Day: 1}, City: "B"}
	assert.Nil(t, NewEvent(in).ZipCode)

	in.ZipCode = "78701"
	e := NewEvent(in)
	require.NotNil(t, e.ZipCode)
	assert.Equal(t, "78701", *e.ZipCode)
}

func TestCreateSellerInput_NormalizeDefaultsTickets(t *testing.T) {
	zero := 0
	for _, tickets := range []*int{nil, &zero} {
		in := CreateSellerInput{TicketsAvailable: tickets}.Normalize()
		require.NotNil(t, in.TicketsAvailable)
		assert.Equal(t, DefaultTicketsAvailable, *in.TicketsAvailable)
	}

	four := 4
	in := CreateSellerInput{TicketsAvailable: &four}.Normalize()
	assert.Equal(t, 4, *in.TicketsAvailable)
}

func TestCreateSellerInput_Validate(t *testing.T) {
	valid := CreateSellerInput{EventID: 1, Name: "Ana", Price: 2000, City: "Austin", WhatsApp: "+15125550100"}.Normalize()
	require.NoError(t, valid.Validate())

	neg := -2
	err := CreateSellerInput{Price: -100, TicketsAvailable: &neg}.Normalize().Validate()
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"event_id is required",
		"name is required",
		"price must be a positive number",
		"city is required",
		"whatsapp is required",
		"tickets_available must be positive",
	}, verr.Problems)
}

func TestNewSeller(t *testing.T) {
	in := CreateSellerInput{EventID: 3, Name: "Ana", Price: 2000, City: "Austin", WhatsApp: "+1", TicketDetails: " Row A "}.Normalize()
	s := NewSeller(in)
	assert.Equal(t, int64(3), s.EventID)
	assert.Equal(t, 1, s.TicketsAvailable)
	require.NotNil(t, s.TicketDetails)
	assert.Equal(t, "Row A", *s.TicketDetails)
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrStorageUnavailable, ErrStorage)
	assert.NotErrorIs(t, ErrStorage, ErrStorageUnavailable)
	wrapped := fmt.Errorf("create seller: %w", NewValidationError("name is required"))
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.NotErrorIs(t, wrapped, ErrReference)
	assert.Equal(t, "name is required", NewValidationError("name is required").Error())
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, PaginationParams{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 20}.Offset())
}

func TestCreateSellerInput_ValidateDetailsIgnoresEventID(t *testing.T) {
	in := CreateSellerInput{Name: "Ana", Price: 2000, City: "Austin", WhatsApp: "+1"}.Normalize()
	require.NoError(t, in.ValidateDetails())
	require.ErrorIs(t, in.Validate(), ErrValidation)
}
