package bcbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldCatalog(t *testing.T) {
	tests := []struct {
		field    Field
		width    int
		item     int
		name     string
		variable bool
	}{
		{FormatCode, 1, 1, "Format Code", false},
		{PassengerName, 20, 11, "Passenger Name", false},
		{OperatingCarrierPNRCode, 7, 7, "Operating Carrier PNR Code", false},
		{FlightNumber, 5, 43, "Flight Number", false},
		{SeatNumber, 4, 104, "Seat Number", false},
		{FieldSizeOfVariableSizeField, 2, 6, "Field Size of Variable Size Field", false},
		{FrequentFlyerNumber, 16, 236, "Frequent Flyer Number", false},
		{BaggageTagLicensePlateNumbers, 13, 23, "Baggage Tag License Plate Number(s)", false},
		{AirlineIndividualUse, 0, 4, "Airline Individual Use", true},
		{SecurityDataPayload, 0, 30, "Security Data", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, tt.field.Width())
			assert.Equal(t, tt.item, tt.field.ItemNumber())
			assert.Equal(t, tt.name, tt.field.Name())
			assert.Equal(t, tt.variable, tt.field.IsVariable())
		})
	}
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "Passenger Status (117)", PassengerStatus.String())
	assert.Equal(t, "Field(200)", Field(200).String())
	assert.Equal(t, "Unknown Field", Field(200).Name())
	assert.Zero(t, Field(200).Width())
	assert.False(t, Field(200).IsVariable())
}

func TestFieldsInEncodingOrder(t *testing.T) {
	fields := Fields()

	assert.Len(t, fields, int(numFields))
	assert.Equal(t, FormatCode, fields[0])
	assert.Equal(t, SecurityDataPayload, fields[len(fields)-1])
	for _, f := range fields {
		assert.NotEmpty(t, f.Name(), "field %d has no name", f)
		assert.NotZero(t, f.ItemNumber(), "field %s has no item number", f)
	}
}
