package models

import "bcbp_trmnl/internal/bcbp"

// PassView is the display form of a decoded boarding pass. Optional fields
// that are not set are nil and left out of the JSON and YAML output.
type PassView struct {
	PassengerName                string        `json:"passenger_name" yaml:"passenger_name"`
	ElectronicTicketIndicator    string        `json:"electronic_ticket_indicator" yaml:"electronic_ticket_indicator"`
	VersionNumber                *string       `json:"version_number,omitempty" yaml:"version_number,omitempty"`
	PassengerDescription         *string       `json:"passenger_description,omitempty" yaml:"passenger_description,omitempty"`
	SourceOfCheckIn              *string       `json:"source_of_check_in,omitempty" yaml:"source_of_check_in,omitempty"`
	SourceOfBoardingPassIssuance *string       `json:"source_of_boarding_pass_issuance,omitempty" yaml:"source_of_boarding_pass_issuance,omitempty"`
	DateOfIssue                  *string       `json:"date_of_issue,omitempty" yaml:"date_of_issue,omitempty"`
	DocumentType                 *string       `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	IssuerDesignator             *string       `json:"issuer_designator,omitempty" yaml:"issuer_designator,omitempty"`
	BaggageTags                  *string       `json:"baggage_tags,omitempty" yaml:"baggage_tags,omitempty"`
	FirstNonConsecutiveTags      *string       `json:"first_non_consecutive_baggage_tags,omitempty" yaml:"first_non_consecutive_baggage_tags,omitempty"`
	SecondNonConsecutiveTags     *string       `json:"second_non_consecutive_baggage_tags,omitempty" yaml:"second_non_consecutive_baggage_tags,omitempty"`
	Legs                         []LegView     `json:"legs" yaml:"legs"`
	SecurityData                 *SecurityView `json:"security_data,omitempty" yaml:"security_data,omitempty"`
}

// LegView is the display form of one flight leg.
type LegView struct {
	OperatingCarrierPNRCode           string  `json:"pnr" yaml:"pnr"`
	FromCityAirportCode               string  `json:"from" yaml:"from"`
	ToCityAirportCode                 string  `json:"to" yaml:"to"`
	OperatingCarrierDesignator        string  `json:"operating_carrier" yaml:"operating_carrier"`
	FlightNumber                      string  `json:"flight_number" yaml:"flight_number"`
	DateOfFlight                      string  `json:"date_of_flight" yaml:"date_of_flight"`
	CompartmentCode                   string  `json:"compartment" yaml:"compartment"`
	SeatNumber                        string  `json:"seat" yaml:"seat"`
	CheckInSequenceNumber             string  `json:"check_in_sequence" yaml:"check_in_sequence"`
	PassengerStatus                   string  `json:"passenger_status" yaml:"passenger_status"`
	AirlineNumericCode                *string `json:"airline_numeric_code,omitempty" yaml:"airline_numeric_code,omitempty"`
	DocumentFormSerialNumber          *string `json:"document_serial_number,omitempty" yaml:"document_serial_number,omitempty"`
	SelecteeIndicator                 *string `json:"selectee,omitempty" yaml:"selectee,omitempty"`
	InternationalDocumentVerification *string `json:"international_document_verification,omitempty" yaml:"international_document_verification,omitempty"`
	MarketingCarrierDesignator        *string `json:"marketing_carrier,omitempty" yaml:"marketing_carrier,omitempty"`
	FrequentFlyerAirlineDesignator    *string `json:"frequent_flyer_airline,omitempty" yaml:"frequent_flyer_airline,omitempty"`
	FrequentFlyerNumber               *string `json:"frequent_flyer_number,omitempty" yaml:"frequent_flyer_number,omitempty"`
	IDADIndicator                     *string `json:"id_ad_indicator,omitempty" yaml:"id_ad_indicator,omitempty"`
	FreeBaggageAllowance              *string `json:"free_baggage_allowance,omitempty" yaml:"free_baggage_allowance,omitempty"`
	FastTrack                         *string `json:"fast_track,omitempty" yaml:"fast_track,omitempty"`
	AirlineIndividualUse              *string `json:"airline_individual_use,omitempty" yaml:"airline_individual_use,omitempty"`
}

// SecurityView is the display form of the security block.
type SecurityView struct {
	Type *string `json:"type,omitempty" yaml:"type,omitempty"`
	Data *string `json:"data,omitempty" yaml:"data,omitempty"`
}

func opt(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}

// NewPassView flattens a decoded pass for display.
func NewPassView(p *bcbp.Bcbp) *PassView {
	v := &PassView{
		PassengerName:                p.PassengerName(),
		ElectronicTicketIndicator:    p.ElectronicTicketIndicator(),
		VersionNumber:                opt(p.VersionNumber()),
		PassengerDescription:         opt(p.PassengerDescription()),
		SourceOfCheckIn:              opt(p.SourceOfCheckIn()),
		SourceOfBoardingPassIssuance: opt(p.SourceOfBoardingPassIssuance()),
		DateOfIssue:                  opt(p.DateOfIssueOfBoardingPass()),
		DocumentType:                 opt(p.DocumentType()),
		IssuerDesignator:             opt(p.AirlineDesignatorOfBoardingPassIssuer()),
		BaggageTags:                  opt(p.BaggageTagLicensePlateNumbers()),
		FirstNonConsecutiveTags:      opt(p.FirstNonConsecutiveBaggageTagLicensePlateNumbers()),
		SecondNonConsecutiveTags:     opt(p.SecondNonConsecutiveBaggageTagLicensePlateNumbers()),
	}

	legs := p.Legs()
	v.Legs = make([]LegView, 0, len(legs))
	for _, l := range legs {
		v.Legs = append(v.Legs, newLegView(l))
	}

	if sd, ok := p.SecurityData(); ok {
		v.SecurityData = &SecurityView{
			Type: opt(sd.TypeOfSecurityData()),
			Data: opt(sd.Data()),
		}
	}
	return v
}

func newLegView(l bcbp.Leg) LegView {
	return LegView{
		OperatingCarrierPNRCode:           l.OperatingCarrierPNRCode(),
		FromCityAirportCode:               l.FromCityAirportCode(),
		ToCityAirportCode:                 l.ToCityAirportCode(),
		OperatingCarrierDesignator:        l.OperatingCarrierDesignator(),
		FlightNumber:                      l.FlightNumber(),
		DateOfFlight:                      l.DateOfFlight(),
		CompartmentCode:                   l.CompartmentCode(),
		SeatNumber:                        l.SeatNumber(),
		CheckInSequenceNumber:             l.CheckInSequenceNumber(),
		PassengerStatus:                   l.PassengerStatus(),
		AirlineNumericCode:                opt(l.AirlineNumericCode()),
		DocumentFormSerialNumber:          opt(l.DocumentFormSerialNumber()),
		SelecteeIndicator:                 opt(l.SelecteeIndicator()),
		InternationalDocumentVerification: opt(l.InternationalDocumentVerification()),
		MarketingCarrierDesignator:        opt(l.MarketingCarrierDesignator()),
		FrequentFlyerAirlineDesignator:    opt(l.FrequentFlyerAirlineDesignator()),
		FrequentFlyerNumber:               opt(l.FrequentFlyerNumber()),
		IDADIndicator:                     opt(l.IDADIndicator()),
		FreeBaggageAllowance:              opt(l.FreeBaggageAllowance()),
		FastTrack:                         opt(l.FastTrack()),
		AirlineIndividualUse:              opt(l.AirlineIndividualUse()),
	}
}
