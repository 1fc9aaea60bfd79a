// Package bcbp decodes IATA Bar Coded Boarding Pass data in the Type 'M'
// format, revisions 2 through 6.
//
// The input is the text carried by the barcode, not an image. Mandatory
// fields are read at fixed widths; conditional fields sit in blocks whose
// sizes are given as two upper-case hexadecimal digits, and only the fields
// that fit in the declared size are decoded.
//
//	pass, err := bcbp.Parse(payload)
//	if err != nil {
//		return err
//	}
//	for _, leg := range pass.Legs() {
//		fmt.Println(leg.FromCityAirportCode(), leg.ToCityAirportCode())
//	}
package bcbp
