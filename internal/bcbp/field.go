package bcbp

import "fmt"

// Field identifies one element of a Type 'M' boarding pass as numbered in the
// IATA BCBP Implementation Guide.
type Field uint8

const (
	FormatCode Field = iota
	NumberOfLegsEncoded
	PassengerName
	ElectronicTicketIndicator
	OperatingCarrierPNRCode
	FromCityAirportCode
	ToCityAirportCode
	OperatingCarrierDesignator
	FlightNumber
	DateOfFlight
	CompartmentCode
	SeatNumber
	CheckInSequenceNumber
	PassengerStatus
	FieldSizeOfVariableSizeField
	BeginningOfVersionNumber
	VersionNumber
	FieldSizeOfStructuredMessageUnique
	PassengerDescription
	SourceOfCheckIn
	SourceOfBoardingPassIssuance
	DateOfIssueOfBoardingPass
	DocumentType
	AirlineDesignatorOfBoardingPassIssuer
	BaggageTagLicensePlateNumbers
	FirstNonConsecutiveBaggageTagLicensePlateNumbers
	SecondNonConsecutiveBaggageTagLicensePlateNumbers
	FieldSizeOfStructuredMessageRepeated
	AirlineNumericCode
	DocumentFormSerialNumber
	SelecteeIndicator
	InternationalDocumentVerification
	MarketingCarrierDesignator
	FrequentFlyerAirlineDesignator
	FrequentFlyerNumber
	IDADIndicator
	FreeBaggageAllowance
	FastTrack
	AirlineIndividualUse
	BeginningOfSecurityData
	TypeOfSecurityData
	LengthOfSecurityData
	SecurityDataPayload

	numFields
)

// Literal values of the section markers.
const (
	FormatCodeM         = "M"
	VersionNumberMarker = ">"
	SecurityDataMarker  = "^"

	hexLengthWidth = 2
	variableWidth  = 0
)

type fieldSpec struct {
	item  int
	width int // 0 means the width is given by a preceding length field
	name  string
}

var fieldSpecs = [numFields]fieldSpec{
	FormatCode:                   {1, 1, "Format Code"},
	NumberOfLegsEncoded:          {5, 1, "Number of Legs Encoded"},
	PassengerName:                {11, 20, "Passenger Name"},
	ElectronicTicketIndicator:    {253, 1, "Electronic Ticket Indicator"},
	OperatingCarrierPNRCode:      {7, 7, "Operating Carrier PNR Code"},
	FromCityAirportCode:          {26, 3, "From City Airport Code"},
	ToCityAirportCode:            {38, 3, "To City Airport Code"},
	OperatingCarrierDesignator:   {42, 3, "Operating Carrier Designator"},
	FlightNumber:                 {43, 5, "Flight Number"},
	DateOfFlight:                 {46, 3, "Date of Flight"},
	CompartmentCode:              {71, 1, "Compartment Code"},
	SeatNumber:                   {104, 4, "Seat Number"},
	CheckInSequenceNumber:        {107, 5, "Check-In Sequence Number"},
	PassengerStatus:              {117, 1, "Passenger Status"},
	FieldSizeOfVariableSizeField: {6, hexLengthWidth, "Field Size of Variable Size Field"},

	BeginningOfVersionNumber:                          {8, 1, "Beginning of Version Number"},
	VersionNumber:                                     {9, 1, "Version Number"},
	FieldSizeOfStructuredMessageUnique:                {10, hexLengthWidth, "Field Size of Structured Message (Unique)"},
	PassengerDescription:                              {15, 1, "Passenger Description"},
	SourceOfCheckIn:                                   {12, 1, "Source of Check-In"},
	SourceOfBoardingPassIssuance:                      {14, 1, "Source of Boarding Pass Issuance"},
	DateOfIssueOfBoardingPass:                         {22, 4, "Date of Issue of Boarding Pass"},
	DocumentType:                                      {16, 1, "Document Type"},
	AirlineDesignatorOfBoardingPassIssuer:             {21, 3, "Airline Designator of Boarding Pass Issuer"},
	BaggageTagLicensePlateNumbers:                     {23, 13, "Baggage Tag License Plate Number(s)"},
	FirstNonConsecutiveBaggageTagLicensePlateNumbers:  {31, 13, "First Non-Consecutive Baggage Tag License Plate Number(s)"},
	SecondNonConsecutiveBaggageTagLicensePlateNumbers: {32, 13, "Second Non-Consecutive Baggage Tag License Plate Number(s)"},

	FieldSizeOfStructuredMessageRepeated: {17, hexLengthWidth, "Field Size of Structured Message (Repeated)"},
	AirlineNumericCode:                   {142, 3, "Airline Numeric Code"},
	DocumentFormSerialNumber:             {143, 10, "Document Form/Serial Number"},
	SelecteeIndicator:                    {18, 1, "Selectee Indicator"},
	InternationalDocumentVerification:    {108, 1, "International Document Verification"},
	MarketingCarrierDesignator:           {19, 3, "Marketing Carrier Designator"},
	FrequentFlyerAirlineDesignator:       {20, 3, "Frequent Flyer Airline Designator"},
	FrequentFlyerNumber:                  {236, 16, "Frequent Flyer Number"},
	IDADIndicator:                        {89, 1, "ID/AD Indicator"},
	FreeBaggageAllowance:                 {118, 3, "Free Baggage Allowance"},
	FastTrack:                            {254, 1, "Fast Track"},
	AirlineIndividualUse:                 {4, variableWidth, "Airline Individual Use"},

	BeginningOfSecurityData: {25, 1, "Beginning of Security Data"},
	TypeOfSecurityData:      {28, 1, "Type of Security Data"},
	LengthOfSecurityData:    {29, hexLengthWidth, "Length of Security Data"},
	SecurityDataPayload:     {30, variableWidth, "Security Data"},
}

// Width returns the number of characters the field occupies, or 0 when its
// width is declared by a preceding length field.
func (f Field) Width() int {
	if f >= numFields {
		return 0
	}
	return fieldSpecs[f].width
}

// Name returns the field name as written in the Implementation Guide.
func (f Field) Name() string {
	if f >= numFields {
		return "Unknown Field"
	}
	return fieldSpecs[f].name
}

// ItemNumber returns the Implementation Guide item number of the field.
func (f Field) ItemNumber() int {
	if f >= numFields {
		return 0
	}
	return fieldSpecs[f].item
}

// IsVariable reports whether the field's width comes from a length prefix.
func (f Field) IsVariable() bool {
	return f < numFields && fieldSpecs[f].width == variableWidth
}

func (f Field) String() string {
	if f >= numFields {
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
	return fmt.Sprintf("%s (%d)", fieldSpecs[f].name, fieldSpecs[f].item)
}

// Fields returns every catalogued field in encoding order.
func Fields() []Field {
	fields := make([]Field, 0, numFields)
	for f := FormatCode; f < numFields; f++ {
		fields = append(fields, f)
	}
	return fields
}
