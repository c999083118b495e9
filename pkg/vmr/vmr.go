// Package vmr models the ICTV Virus Metadata Resource table as it is kept in
// a gnvmr working directory. Only two columns are interpreted: "Sort", the
// stable integer key of a record, and "Virus GENBANK accession". All other
// columns pass through untouched.
package vmr

import (
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gnvmr/pkg/accession"
)

const (
	// SortColumn is the header of the primary key column.
	SortColumn = "Sort"
	// AccessionColumn is the header of the GenBank accession column.
	AccessionColumn = "Virus GENBANK accession"
)

// Record is one row of the VMR table.
type Record struct {
	// SortID is the value of the Sort column.
	SortID int
	// Fields contains all cells of the row in header order.
	Fields []string

	accIdx int
}

// Accession returns the raw (or canonical, after Canonicalize) content
// of the accession column.
func (r Record) Accession() string {
	return r.Fields[r.accIdx]
}

// Accessions returns identifiers from the canonical accession column.
func (r Record) Accessions() []string {
	return accession.Split(r.Accession())
}

// Table is an ordered collection of records sharing the same header.
type Table struct {
	Header  []string
	Records []Record

	// Skipped is the number of input rows dropped by NewTable because
	// their accession field was empty.
	Skipped int

	sortIdx int
	accIdx  int
}

// NewTable builds a table from a header and data rows. Rows are padded or
// truncated to the header length. Rows with an empty accession are dropped,
// every remaining row must have a unique integer Sort value.
func NewTable(header []string, rows [][]string) (*Table, error) {
	hdr := make([]string, len(header))
	for i := range header {
		hdr[i] = strings.TrimSpace(header[i])
	}

	sortIdx := columnIndex(hdr, SortColumn)
	if sortIdx < 0 {
		return nil, ColumnError(SortColumn)
	}
	accIdx := columnIndex(hdr, AccessionColumn)
	if accIdx < 0 {
		return nil, ColumnError(AccessionColumn)
	}

	res := &Table{
		Header:  hdr,
		Records: make([]Record, 0, len(rows)),
		sortIdx: sortIdx,
		accIdx:  accIdx,
	}

	seen := make(map[int]struct{}, len(rows))
	for i, row := range rows {
		fields := fitRow(row, len(hdr))
		if strings.TrimSpace(fields[accIdx]) == "" {
			res.Skipped++
			continue
		}

		id, err := parseSortID(fields[sortIdx])
		if err != nil {
			// header is the first line of the source
			return nil, SortIDError(i+2, fields[sortIdx], err)
		}
		if _, ok := seen[id]; ok {
			return nil, DuplicateSortIDError(id)
		}
		seen[id] = struct{}{}

		res.Records = append(res.Records, Record{
			SortID: id,
			Fields: fields,
			accIdx: accIdx,
		})
	}
	return res, nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// SortIDs returns Sort values of all records in table order.
func (t *Table) SortIDs() []int {
	res := make([]int, len(t.Records))
	for i := range t.Records {
		res[i] = t.Records[i].SortID
	}
	return res
}

// Rows returns the data rows in header order, ready for serialization.
func (t *Table) Rows() [][]string {
	res := make([][]string, len(t.Records))
	for i := range t.Records {
		res[i] = t.Records[i].Fields
	}
	return res
}

// Canonicalize normalizes the accession column of every record in place,
// replacing it with the ';'-joined list of identifiers.
func (t *Table) Canonicalize() {
	for i := range t.Records {
		r := &t.Records[i]
		fields := make([]string, len(r.Fields))
		copy(fields, r.Fields)
		fields[t.accIdx] = accession.Join(accession.Normalize(r.Accession()))
		r.Fields = fields
	}
}

// Without returns a new table that keeps the order of t and excludes
// records with the given Sort ids. The receiver is not modified.
func (t *Table) Without(ids []int) *Table {
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	res := &Table{
		Header:  t.Header,
		Records: make([]Record, 0, len(t.Records)),
		sortIdx: t.sortIdx,
		accIdx:  t.accIdx,
	}
	for _, r := range t.Records {
		if _, ok := drop[r.SortID]; ok {
			continue
		}
		res.Records = append(res.Records, r)
	}
	return res
}

func columnIndex(header []string, name string) int {
	for i, v := range header {
		if v == name {
			return i
		}
	}
	return -1
}

func fitRow(row []string, n int) []string {
	res := make([]string, n)
	copy(res, row)
	return res
}

// parseSortID accepts integers and integral floats ("12.0"), the way
// spreadsheet cells are sometimes rendered. Floats that do not fit into
// int are rejected.
func parseSortID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err == nil {
		return id, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) {
		return 0, err
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, err
	}
	return int(f), nil
}
