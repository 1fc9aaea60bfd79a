package database

import (
	"database/sql"
	"fmt"
	"time"

	"bcbp_trmnl/internal/models"
)

type ScanRepository interface {
	InsertBatch(msgs []*models.ScanMessage) error
	DeleteBefore(cutoff time.Time) (int64, error)
	CountPasses() (int, error)
	CountRejected() (int, error)
}

type scanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) ScanRepository {
	return &scanRepository{db: db}
}

// nullable stores an absent optional field as NULL.
func nullable(v string, ok bool) sql.NullString {
	return sql.NullString{String: v, Valid: ok}
}

// InsertBatch writes one or more scans in a single transaction. Decoded passes
// go to passes and legs; a pass scanned twice is kept once. Scans that failed
// to decode go to rejected_scans.
func (r *scanRepository) InsertBatch(msgs []*models.ScanMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	passStmt, err := tx.Prepare(`INSERT OR IGNORE INTO passes (
		scanned_at, source, raw, passenger_name, electronic_ticket,
		version_number, num_legs, has_security_data
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare pass statement: %w", err)
	}
	defer passStmt.Close()

	legStmt, err := tx.Prepare(`INSERT INTO legs (
		pass_id, leg_index, pnr, from_airport, to_airport, operating_carrier,
		flight_number, date_of_flight, compartment, seat, check_in_sequence,
		passenger_status, marketing_carrier, frequent_flyer_airline, frequent_flyer_number
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare leg statement: %w", err)
	}
	defer legStmt.Close()

	rejectStmt, err := tx.Prepare(`INSERT INTO rejected_scans (
		scanned_at, source, raw, error_code, reason
	) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare rejected scan statement: %w", err)
	}
	defer rejectStmt.Close()

	for _, msg := range msgs {
		if !msg.Valid() {
			if _, err := rejectStmt.Exec(
				msg.Timestamp.UTC(),
				msg.Source,
				msg.Raw,
				msg.ErrorCode(),
				msg.Reason(),
			); err != nil {
				return fmt.Errorf("failed to insert rejected scan: %w", err)
			}
			continue
		}

		pass := msg.Pass
		_, hasSecurity := pass.SecurityData()
		res, err := passStmt.Exec(
			msg.Timestamp.UTC(),
			msg.Source,
			msg.Raw,
			pass.PassengerName(),
			pass.ElectronicTicketIndicator(),
			nullable(pass.VersionNumber()),
			pass.NumLegs(),
			hasSecurity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pass: %w", err)
		}
		passID, inserted, err := insertedID(res)
		if err != nil {
			return err
		}
		if !inserted {
			continue // already stored
		}

		for i, leg := range pass.Legs() {
			if _, err := legStmt.Exec(
				passID,
				i,
				leg.OperatingCarrierPNRCode(),
				leg.FromCityAirportCode(),
				leg.ToCityAirportCode(),
				leg.OperatingCarrierDesignator(),
				leg.FlightNumber(),
				leg.DateOfFlight(),
				leg.CompartmentCode(),
				leg.SeatNumber(),
				leg.CheckInSequenceNumber(),
				leg.PassengerStatus(),
				nullable(leg.MarketingCarrierDesignator()),
				nullable(leg.FrequentFlyerAirlineDesignator()),
				nullable(leg.FrequentFlyerNumber()),
			); err != nil {
				return fmt.Errorf("failed to insert leg %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertedID returns the id of a row written by INSERT OR IGNORE, or false
// when the row was ignored as a duplicate.
func insertedID(res sql.Result) (int64, bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read inserted pass count: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read pass id: %w", err)
	}
	return id, true, nil
}

// DeleteBefore removes passes, their legs and rejected scans scanned before
// cutoff. The count returned covers passes and rejected scans.
func (r *scanRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM legs WHERE pass_id IN (
		SELECT id FROM passes WHERE scanned_at < ?
	)`, cutoff.UTC()); err != nil {
		return 0, fmt.Errorf("failed to prune legs: %w", err)
	}

	var total int64
	for _, table := range []string{"passes", "rejected_scans"} {
		res, err := tx.Exec("DELETE FROM "+table+" WHERE scanned_at < ?", cutoff.UTC())
		if err != nil {
			return 0, fmt.Errorf("failed to prune %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count pruned %s: %w", table, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return total, nil
}

func (r *scanRepository) CountPasses() (int, error) {
	return r.count("passes")
}

func (r *scanRepository) CountRejected() (int, error) {
	return r.count("rejected_scans")
}

func (r *scanRepository) count(table string) (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
