package bcbp

import "strings"

// Bcbp is a decoded Type 'M' boarding pass. Values are kept as the raw
// fixed-width slices of the input; accessors decide how they are presented.
type Bcbp struct {
	passengerName             string
	electronicTicketIndicator string

	versionNumber                string
	passengerDescription         string
	sourceOfCheckIn              string
	sourceOfBoardingPassIssuance string
	dateOfIssueOfBoardingPass    string
	documentType                 string
	issuerDesignator             string
	baggageTags                  string
	firstNonConsecutiveTags      string
	secondNonConsecutiveTags     string

	legs         []Leg
	securityData *SecurityData
}

// Leg is one flight segment of a boarding pass.
type Leg struct {
	operatingCarrierPNRCode    string
	fromCityAirportCode        string
	toCityAirportCode          string
	operatingCarrierDesignator string
	flightNumber               string
	dateOfFlight               string
	compartmentCode            string
	seatNumber                 string
	checkInSequenceNumber      string
	passengerStatus            string

	airlineNumericCode                string
	documentFormSerialNumber          string
	selecteeIndicator                 string
	internationalDocumentVerification string
	marketingCarrierDesignator        string
	frequentFlyerAirlineDesignator    string
	frequentFlyerNumber               string
	idADIndicator                     string
	freeBaggageAllowance              string
	fastTrack                         string
	airlineIndividualUse              string
}

// SecurityData is the optional trailing security block. The payload is
// surfaced as is; nothing here verifies it.
type SecurityData struct {
	typeOfSecurityData string
	securityData       string
}

// required presents a mandatory slot with its padding removed.
func required(raw string) string {
	return strings.TrimRight(raw, " ")
}

// optional maps an all-space (or missing) slot to absent.
func optional(raw string) (string, bool) {
	v := strings.TrimRight(raw, " ")
	return v, v != ""
}

// verbatim is optional without trimming, for free-form fields.
func verbatim(raw string) (string, bool) {
	if strings.TrimLeft(raw, " ") == "" {
		return "", false
	}
	return raw, true
}

func (b *Bcbp) PassengerName() string             { return required(b.passengerName) }
func (b *Bcbp) ElectronicTicketIndicator() string { return required(b.electronicTicketIndicator) }

// VersionNumber is the BCBP format revision, present when the first leg
// carries a conditional section.
func (b *Bcbp) VersionNumber() (string, bool) { return optional(b.versionNumber) }

func (b *Bcbp) PassengerDescription() (string, bool) { return optional(b.passengerDescription) }
func (b *Bcbp) SourceOfCheckIn() (string, bool)      { return optional(b.sourceOfCheckIn) }
func (b *Bcbp) SourceOfBoardingPassIssuance() (string, bool) {
	return optional(b.sourceOfBoardingPassIssuance)
}

// DateOfIssueOfBoardingPass is the raw Julian date (last digit of the year
// followed by the day of the year).
func (b *Bcbp) DateOfIssueOfBoardingPass() (string, bool) {
	return optional(b.dateOfIssueOfBoardingPass)
}

func (b *Bcbp) DocumentType() (string, bool) { return optional(b.documentType) }
func (b *Bcbp) AirlineDesignatorOfBoardingPassIssuer() (string, bool) {
	return optional(b.issuerDesignator)
}
func (b *Bcbp) BaggageTagLicensePlateNumbers() (string, bool) { return optional(b.baggageTags) }
func (b *Bcbp) FirstNonConsecutiveBaggageTagLicensePlateNumbers() (string, bool) {
	return optional(b.firstNonConsecutiveTags)
}
func (b *Bcbp) SecondNonConsecutiveBaggageTagLicensePlateNumbers() (string, bool) {
	return optional(b.secondNonConsecutiveTags)
}

// Legs returns the flight legs in itinerary order. The slice is a copy.
func (b *Bcbp) Legs() []Leg {
	legs := make([]Leg, len(b.legs))
	copy(legs, b.legs)
	return legs
}

// NumLegs returns the number of legs encoded.
func (b *Bcbp) NumLegs() int {
	return len(b.legs)
}

// SecurityData returns the security block, if the pass has one.
func (b *Bcbp) SecurityData() (SecurityData, bool) {
	if b.securityData == nil {
		return SecurityData{}, false
	}
	return *b.securityData, true
}

func (l Leg) OperatingCarrierPNRCode() string    { return required(l.operatingCarrierPNRCode) }
func (l Leg) FromCityAirportCode() string        { return required(l.fromCityAirportCode) }
func (l Leg) ToCityAirportCode() string          { return required(l.toCityAirportCode) }
func (l Leg) OperatingCarrierDesignator() string { return required(l.operatingCarrierDesignator) }

// FlightNumber is four digits with an optional suffix letter, as text.
func (l Leg) FlightNumber() string { return required(l.flightNumber) }

// DateOfFlight is the raw Julian day of the year.
func (l Leg) DateOfFlight() string          { return required(l.dateOfFlight) }
func (l Leg) CompartmentCode() string       { return required(l.compartmentCode) }
func (l Leg) SeatNumber() string            { return required(l.seatNumber) }
func (l Leg) CheckInSequenceNumber() string { return required(l.checkInSequenceNumber) }
func (l Leg) PassengerStatus() string       { return required(l.passengerStatus) }

func (l Leg) AirlineNumericCode() (string, bool)       { return optional(l.airlineNumericCode) }
func (l Leg) DocumentFormSerialNumber() (string, bool) { return optional(l.documentFormSerialNumber) }
func (l Leg) SelecteeIndicator() (string, bool)        { return optional(l.selecteeIndicator) }
func (l Leg) InternationalDocumentVerification() (string, bool) {
	return optional(l.internationalDocumentVerification)
}
func (l Leg) MarketingCarrierDesignator() (string, bool) {
	return optional(l.marketingCarrierDesignator)
}
func (l Leg) FrequentFlyerAirlineDesignator() (string, bool) {
	return optional(l.frequentFlyerAirlineDesignator)
}
func (l Leg) FrequentFlyerNumber() (string, bool)  { return optional(l.frequentFlyerNumber) }
func (l Leg) IDADIndicator() (string, bool)        { return optional(l.idADIndicator) }
func (l Leg) FreeBaggageAllowance() (string, bool) { return optional(l.freeBaggageAllowance) }
func (l Leg) FastTrack() (string, bool)            { return optional(l.fastTrack) }

// AirlineIndividualUse is returned untrimmed; its layout belongs to the airline.
func (l Leg) AirlineIndividualUse() (string, bool) { return verbatim(l.airlineIndividualUse) }

func (s SecurityData) TypeOfSecurityData() (string, bool) { return optional(s.typeOfSecurityData) }

// Data returns the security payload untrimmed.
func (s SecurityData) Data() (string, bool) { return verbatim(s.securityData) }
