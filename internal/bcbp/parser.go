package bcbp

// slot binds a catalog field to the struct member it is decoded into.
type slot struct {
	field Field
	dst   *string
}

// Parse decodes a Type 'M' boarding pass from the text payload of its
// barcode. It either returns a complete record or the first error it hit;
// partially decoded records are never returned.
//
// Parse keeps no state between calls and is safe for concurrent use.
func Parse(input string) (*Bcbp, error) {
	if !isASCII(input) {
		return nil, ErrInvalidCharacters
	}

	c := newCursor(input)

	format, err := c.take(FormatCode)
	if err != nil {
		return nil, err
	}
	if format != FormatCodeM {
		return nil, fieldError(FormatCode, ErrUnsupportedFormat)
	}

	numLegs, err := takeLegCount(c)
	if err != nil {
		return nil, err
	}

	b := &Bcbp{legs: make([]Leg, 0, numLegs)}
	if err := takeAll(c, []slot{
		{PassengerName, &b.passengerName},
		{ElectronicTicketIndicator, &b.electronicTicketIndicator},
	}); err != nil {
		return nil, err
	}

	for i := 0; i < numLegs; i++ {
		leg, err := parseLeg(c, b, i == 0)
		if err != nil {
			return nil, err
		}
		b.legs = append(b.legs, leg)
	}

	if !c.atEnd() {
		sd, err := parseSecurityData(c)
		if err != nil {
			return nil, err
		}
		b.securityData = sd
	}

	if !c.atEnd() {
		return nil, ErrTrailingCharacters
	}
	return b, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

// takeLegCount reads the single decimal digit giving the number of legs.
func takeLegCount(c *cursor) (int, error) {
	s, err := c.take(NumberOfLegsEncoded)
	if err != nil {
		return 0, err
	}
	if s[0] < '1' || s[0] > '9' {
		return 0, fieldError(NumberOfLegsEncoded, ErrExpectedInteger)
	}
	return int(s[0] - '0'), nil
}

// takeAll reads mandatory fields in order, failing on the first short read.
func takeAll(c *cursor, slots []slot) error {
	for _, s := range slots {
		v, err := c.take(s.field)
		if err != nil {
			return err
		}
		*s.dst = v
	}
	return nil
}

// takeWhileFits reads optional fields in order and stops at the first one
// the cursor cannot hold in full. A short take leaves the cursor where it
// was, so fields after that point stay unset.
func takeWhileFits(c *cursor, slots []slot) {
	for _, s := range slots {
		v, err := c.take(s.field)
		if err != nil {
			return
		}
		*s.dst = v
	}
}

// nestedSection opens a length-prefixed block inside c. It reports false
// when c is too short to hold even the length prefix, in which case nothing
// is consumed and the caller treats the remainder as unstructured.
func nestedSection(c *cursor, f Field) (*cursor, bool, error) {
	if c.remaining() < hexLengthWidth {
		return nil, false, nil
	}
	sub, err := c.section(f)
	if err != nil {
		return nil, false, err
	}
	return sub, true, nil
}

// parseLeg decodes one leg group. The first leg also carries the
// document-level conditional fields, which are stored on b.
func parseLeg(c *cursor, b *Bcbp, first bool) (Leg, error) {
	var l Leg
	if err := takeAll(c, []slot{
		{OperatingCarrierPNRCode, &l.operatingCarrierPNRCode},
		{FromCityAirportCode, &l.fromCityAirportCode},
		{ToCityAirportCode, &l.toCityAirportCode},
		{OperatingCarrierDesignator, &l.operatingCarrierDesignator},
		{FlightNumber, &l.flightNumber},
		{DateOfFlight, &l.dateOfFlight},
		{CompartmentCode, &l.compartmentCode},
		{SeatNumber, &l.seatNumber},
		{CheckInSequenceNumber, &l.checkInSequenceNumber},
		{PassengerStatus, &l.passengerStatus},
	}); err != nil {
		return Leg{}, err
	}

	block, err := c.section(FieldSizeOfVariableSizeField)
	if err != nil {
		return Leg{}, err
	}
	if block.atEnd() {
		return l, nil
	}

	if first {
		structured, err := parseDocumentBlock(block, b)
		if err != nil {
			return Leg{}, err
		}
		if !structured {
			l.airlineIndividualUse = block.rest()
			return l, nil
		}
	}

	repeated, ok, err := nestedSection(block, FieldSizeOfStructuredMessageRepeated)
	if err != nil {
		return Leg{}, err
	}
	if ok {
		takeWhileFits(repeated, []slot{
			{AirlineNumericCode, &l.airlineNumericCode},
			{DocumentFormSerialNumber, &l.documentFormSerialNumber},
			{SelecteeIndicator, &l.selecteeIndicator},
			{InternationalDocumentVerification, &l.internationalDocumentVerification},
			{MarketingCarrierDesignator, &l.marketingCarrierDesignator},
			{FrequentFlyerAirlineDesignator, &l.frequentFlyerAirlineDesignator},
			{FrequentFlyerNumber, &l.frequentFlyerNumber},
			{IDADIndicator, &l.idADIndicator},
			{FreeBaggageAllowance, &l.freeBaggageAllowance},
			{FastTrack, &l.fastTrack},
		})
	}

	l.airlineIndividualUse = block.rest()
	return l, nil
}

// parseDocumentBlock reads the version marker, version number and the unique
// structured message from the first leg's conditional block. It returns
// false when the block ends before the unique message's size.
func parseDocumentBlock(c *cursor, b *Bcbp) (bool, error) {
	marker, err := c.take(BeginningOfVersionNumber)
	if err != nil {
		return false, err
	}
	if marker != VersionNumberMarker {
		return false, fieldError(BeginningOfVersionNumber, ErrInvalidStartOfVersionNumber)
	}

	takeWhileFits(c, []slot{{VersionNumber, &b.versionNumber}})
	if b.versionNumber == "" {
		return false, nil
	}

	unique, ok, err := nestedSection(c, FieldSizeOfStructuredMessageUnique)
	if err != nil || !ok {
		return false, err
	}
	takeWhileFits(unique, []slot{
		{PassengerDescription, &b.passengerDescription},
		{SourceOfCheckIn, &b.sourceOfCheckIn},
		{SourceOfBoardingPassIssuance, &b.sourceOfBoardingPassIssuance},
		{DateOfIssueOfBoardingPass, &b.dateOfIssueOfBoardingPass},
		{DocumentType, &b.documentType},
		{AirlineDesignatorOfBoardingPassIssuer, &b.issuerDesignator},
		{BaggageTagLicensePlateNumbers, &b.baggageTags},
		{FirstNonConsecutiveBaggageTagLicensePlateNumbers, &b.firstNonConsecutiveTags},
		{SecondNonConsecutiveBaggageTagLicensePlateNumbers, &b.secondNonConsecutiveTags},
	})
	return true, nil
}

// parseSecurityData reads the trailing security block: marker, type, a hex
// length and that many characters of payload.
func parseSecurityData(c *cursor) (*SecurityData, error) {
	marker, err := c.take(BeginningOfSecurityData)
	if err != nil {
		return nil, err
	}
	if marker != SecurityDataMarker {
		return nil, fieldError(BeginningOfSecurityData, ErrInvalidStartOfSecurityData)
	}

	sd := &SecurityData{}
	if sd.typeOfSecurityData, err = c.take(TypeOfSecurityData); err != nil {
		return nil, err
	}
	n, err := c.takeHexLength(LengthOfSecurityData)
	if err != nil {
		return nil, err
	}
	if sd.securityData, err = c.takeVariable(SecurityDataPayload, n); err != nil {
		return nil, err
	}
	return sd, nil
}
