package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bcbp_trmnl/internal/bcbp"
	"bcbp_trmnl/internal/models"
)

// parseResult is the outcome for one payload, shaped for json and yaml output.
type parseResult struct {
	Input string           `json:"input" yaml:"input"`
	Pass  *models.PassView `json:"pass,omitempty" yaml:"pass,omitempty"`
	Error string           `json:"error,omitempty" yaml:"error,omitempty"`
	Code  string           `json:"code,omitempty" yaml:"code,omitempty"`
}

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [PAYLOAD...]",
		Short: "Decode boarding pass payloads",
		Long: `Decodes each payload given as an argument, or each line of stdin when no
arguments are given. Exits non-zero if any payload fails to decode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "text" && format != "json" && format != "yaml" {
				return fmt.Errorf("invalid format: %s (must be text, json, or yaml)", format)
			}

			inputs := args
			if len(inputs) == 0 {
				var err error
				if inputs, err = readLines(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			results := decodeAll(inputs)
			if err := writeResults(cmd.OutOrStdout(), format, results); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d payloads failed to decode", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	return cmd
}

// readLines returns the non-blank lines of r without their line endings.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

func decodeAll(inputs []string) []parseResult {
	results := make([]parseResult, 0, len(inputs))
	for _, in := range inputs {
		r := parseResult{Input: in}
		pass, err := bcbp.Parse(in)
		if err != nil {
			r.Error = err.Error()
			r.Code = bcbp.ErrorCode(err)
		} else {
			r.Pass = models.NewPassView(pass)
		}
		results = append(results, r)
	}
	return results
}

func writeResults(w io.Writer, format string, results []parseResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeText(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, r parseResult) error {
	if r.Pass == nil {
		_, err := fmt.Fprintf(w, "%q\n  error: %s (%s)\n", r.Input, r.Error, r.Code)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := r.Pass
	row := func(label string, v *string) {
		if v != nil {
			fmt.Fprintf(tw, "%s:\t%s\n", label, *v)
		}
	}

	fmt.Fprintf(tw, "Passenger:\t%s\n", p.PassengerName)
	fmt.Fprintf(tw, "Electronic ticket:\t%s\n", p.ElectronicTicketIndicator)
	row("Version", p.VersionNumber)
	row("Passenger description", p.PassengerDescription)
	row("Source of check-in", p.SourceOfCheckIn)
	row("Source of issuance", p.SourceOfBoardingPassIssuance)
	row("Date of issue", p.DateOfIssue)
	row("Document type", p.DocumentType)
	row("Issuer", p.IssuerDesignator)
	row("Baggage tags", p.BaggageTags)
	row("Baggage tags (2nd)", p.FirstNonConsecutiveTags)
	row("Baggage tags (3rd)", p.SecondNonConsecutiveTags)

	for i, l := range p.Legs {
		fmt.Fprintf(tw, "Leg %d:\t%s -> %s  %s %s  day %s\n", i+1,
			l.FromCityAirportCode, l.ToCityAirportCode,
			l.OperatingCarrierDesignator, l.FlightNumber, l.DateOfFlight)
		fmt.Fprintf(tw, "  PNR:\t%s\n", l.OperatingCarrierPNRCode)
		fmt.Fprintf(tw, "  Seat:\t%s %s\n", l.CompartmentCode, l.SeatNumber)
		fmt.Fprintf(tw, "  Sequence:\t%s\n", l.CheckInSequenceNumber)
		fmt.Fprintf(tw, "  Status:\t%s\n", l.PassengerStatus)
		row("  Airline numeric code", l.AirlineNumericCode)
		row("  Document serial", l.DocumentFormSerialNumber)
		row("  Selectee", l.SelecteeIndicator)
		row("  Document verification", l.InternationalDocumentVerification)
		row("  Marketing carrier", l.MarketingCarrierDesignator)
		row("  Frequent flyer airline", l.FrequentFlyerAirlineDesignator)
		row("  Frequent flyer number", l.FrequentFlyerNumber)
		row("  ID/AD", l.IDADIndicator)
		row("  Free baggage", l.FreeBaggageAllowance)
		row("  Fast track", l.FastTrack)
		if l.AirlineIndividualUse != nil {
			fmt.Fprintf(tw, "  Airline use:\t%q\n", *l.AirlineIndividualUse)
		}
	}

	if sd := p.SecurityData; sd != nil {
		row("Security type", sd.Type)
		row("Security data", sd.Data)
	}

	return tw.Flush()
}
