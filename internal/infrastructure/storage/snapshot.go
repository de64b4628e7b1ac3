package storage

import (
	"context"
	"fmt"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// Snapshot is the full persisted state of one reconciliation session.
type Snapshot struct {
	BankTransactions []*ledger.BankTransaction
	LedgerEntries    []*ledger.LedgerEntry
	StatementFiles   []string
	ReportFiles      []string
}

// SaveSnapshot replaces the stored session with snap in one
// transaction.
func (s *Storage) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"bank_transactions", "ledger_entries", "imported_files"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	bankStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bank_transactions
		(id, source_file, bank_code, bank_name, date, amount, description,
		 payment_type, reconciled, disabled, pair_key, invoice_numbers,
		 cp_name, cp_document, cp_type, cp_date, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bankStmt.Close()

	for i, t := range snap.BankTransactions {
		row, err := toBankRow(t)
		if err != nil {
			return err
		}
		_, err = bankStmt.ExecContext(ctx,
			row.ID, row.SourceFile, row.BankCode, row.BankName, row.Date,
			row.Amount, row.Description, row.PaymentType, row.Reconciled,
			row.Disabled, row.PairKey, row.InvoiceNumbers,
			row.CpName, row.CpDocument, row.CpType, row.CpDate, i,
		)
		if err != nil {
			return fmt.Errorf("failed to save bank transaction %s: %w", row.ID, err)
		}
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_entries
		(id, source_file, direction, client, document, amount, date,
		 invoice_number, salesperson, raw_type, reconciled, disabled,
		 pair_key, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for i, e := range snap.LedgerEntries {
		row := toEntryRow(e)
		_, err = entryStmt.ExecContext(ctx,
			row.ID, row.SourceFile, row.Direction, row.Client, row.Document,
			row.Amount, row.Date, row.InvoiceNumber, row.Salesperson,
			row.RawType, row.Reconciled, row.Disabled, row.PairKey, i,
		)
		if err != nil {
			return fmt.Errorf("failed to save ledger entry %s: %w", row.ID, err)
		}
	}

	for i, name := range snap.StatementFiles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO imported_files (name, kind, position) VALUES (?, 'statement', ?)`,
			name, i,
		); err != nil {
			return fmt.Errorf("failed to save statement file %s: %w", name, err)
		}
	}
	for i, name := range snap.ReportFiles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO imported_files (name, kind, position) VALUES (?, 'report', ?)`,
			name, i,
		); err != nil {
			return fmt.Errorf("failed to save report file %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored session. An empty database yields an
// empty snapshot, not an error.
func (s *Storage) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_file, bank_code, bank_name, date, amount,
		       description, payment_type, reconciled, disabled, pair_key,
		       invoice_numbers, cp_name, cp_document, cp_type, cp_date
		FROM bank_transactions ORDER BY position
	`)
	if err != nil {
		return snap, err
	}
	defer rows.Close()

	for rows.Next() {
		var r bankRow
		if err := rows.Scan(
			&r.ID, &r.SourceFile, &r.BankCode, &r.BankName, &r.Date,
			&r.Amount, &r.Description, &r.PaymentType, &r.Reconciled,
			&r.Disabled, &r.PairKey, &r.InvoiceNumbers,
			&r.CpName, &r.CpDocument, &r.CpType, &r.CpDate,
		); err != nil {
			return snap, err
		}
		t, err := r.toDomain()
		if err != nil {
			return snap, err
		}
		snap.BankTransactions = append(snap.BankTransactions, t)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	entryRows, err := s.db.QueryContext(ctx, `
		SELECT id, source_file, direction, client, document, amount, date,
		       invoice_number, salesperson, raw_type, reconciled, disabled,
		       pair_key
		FROM ledger_entries ORDER BY position
	`)
	if err != nil {
		return snap, err
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var r entryRow
		if err := entryRows.Scan(
			&r.ID, &r.SourceFile, &r.Direction, &r.Client, &r.Document,
			&r.Amount, &r.Date, &r.InvoiceNumber, &r.Salesperson,
			&r.RawType, &r.Reconciled, &r.Disabled, &r.PairKey,
		); err != nil {
			return snap, err
		}
		e, err := r.toDomain()
		if err != nil {
			return snap, err
		}
		snap.LedgerEntries = append(snap.LedgerEntries, e)
	}
	if err := entryRows.Err(); err != nil {
		return snap, err
	}

	fileRows, err := s.db.QueryContext(ctx, `
		SELECT name, kind FROM imported_files ORDER BY kind, position
	`)
	if err != nil {
		return snap, err
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var name, kind string
		if err := fileRows.Scan(&name, &kind); err != nil {
			return snap, err
		}
		switch kind {
		case "statement":
			snap.StatementFiles = append(snap.StatementFiles, name)
		case "report":
			snap.ReportFiles = append(snap.ReportFiles, name)
		}
	}
	return snap, fileRows.Err()
}
