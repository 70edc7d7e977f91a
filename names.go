package x12

import (
	"bytes"
	"encoding/csv"
	"sync"

	_ "embed"
)

// schemas.csv maps transaction set ID codes to their published names,
// scraped from the public X12 transaction set registry.
//
//go:embed schemas.csv
var schemasCSV []byte

// UnidentifiedTransactionSet is the Name assigned to transaction sets whose
// ID code is not in the built-in table.
const UnidentifiedTransactionSet = "unidentified"

var transactionSetNames = sync.OnceValue(func() map[string]string {
	r := csv.NewReader(bytes.NewReader(schemasCSV))
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		// The table is an embedded asset; a read failure means a build
		// problem, not bad input, and degrades every lookup to the
		// unidentified fallback.
		return map[string]string{}
	}
	names := make(map[string]string, len(records))
	for _, rec := range records {
		names[rec[0]] = rec[1]
	}
	return names
})

// TransactionSetName returns the published name for a transaction set ID
// code, e.g. "Purchase Order" for "850", or UnidentifiedTransactionSet when
// the code is unknown.
func TransactionSetName(code string) string {
	if name, ok := transactionSetNames()[code]; ok {
		return name
	}
	return UnidentifiedTransactionSet
}
