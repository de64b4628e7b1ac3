package recon

import (
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// AddStatementRecords appends freshly parsed bank transactions under
// the given source file name. Re-importing a known file is rejected;
// records whose literal field tuple already exists are silently
// skipped so overlapping extracts never double-count. The file name is
// recorded only when at least one record was actually added. Returns
// the number of records added.
func (s *Session) AddStatementRecords(filename string, records []*ledger.BankTransaction) (int, error) {
	if containsFileName(s.statementFiles, filename) {
		return 0, ErrFileAlreadyImported
	}

	seen := make(map[string]bool, len(s.bank))
	for _, t := range s.bank {
		seen[t.DupKey()] = true
	}

	added := 0
	for _, rec := range records {
		key := rec.DupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		s.bank = append(s.bank, rec)
		added++
	}

	if added > 0 {
		s.statementFiles = append(s.statementFiles, filename)
		s.sortByDate()
	}
	s.logger.Info("statement imported", "file", filename, "parsed", len(records), "added", added)
	return added, nil
}

// AddReportRecords appends freshly extracted ledger entries under the
// given source file name, with the same duplicate handling as
// AddStatementRecords.
func (s *Session) AddReportRecords(filename string, records []*ledger.LedgerEntry) (int, error) {
	if containsFileName(s.reportFiles, filename) {
		return 0, ErrFileAlreadyImported
	}

	seen := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		seen[e.DupKey()] = true
	}

	added := 0
	for _, rec := range records {
		key := rec.DupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		s.entries = append(s.entries, rec)
		added++
	}

	if added > 0 {
		s.reportFiles = append(s.reportFiles, filename)
		s.sortByDate()
	}
	s.logger.Info("report imported", "file", filename, "parsed", len(records), "added", added)
	return added, nil
}

// RemoveStatementFile deletes every bank transaction imported from the
// named file and forgets the file. Selections pointing at deleted
// records are dropped.
func (s *Session) RemoveStatementFile(name string) {
	norm := ledger.NormalizeFileName(name)
	kept := s.bank[:0]
	for _, t := range s.bank {
		if ledger.NormalizeFileName(t.SourceFile) == norm {
			delete(s.selectedBank, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.bank = kept
	s.statementFiles = removeFileName(s.statementFiles, name)
	s.logger.Info("statement file removed", "file", name)
}

// RemoveReportFile deletes every ledger entry imported from the named
// file and forgets the file.
func (s *Session) RemoveReportFile(name string) {
	norm := ledger.NormalizeFileName(name)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if ledger.NormalizeFileName(e.SourceFile) == norm {
			delete(s.selectedLedger, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.reportFiles = removeFileName(s.reportFiles, name)
	s.logger.Info("report file removed", "file", name)
}
