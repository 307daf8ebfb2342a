// Package policy implements the cleaning rules for the insurance-policy
// dataset: nine named fields, a fixed stage order, one whole-dataset
// aggregate (mean policy amount) computed before any row is touched, and a
// single row-dropping filter for negative amounts.
package policy

import (
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// Column names of the policy dataset.
const (
	ColCustomerName    = "customer_name"
	ColPhoneNumber     = "phone_number"
	ColEmail           = "email"
	ColPolicyType      = "policy_type"
	ColPolicyAmount    = "policy_amount"
	ColClaimAmount     = "claim_amount"
	ColState           = "state"
	ColPolicyStartDate = "policy_start_date"
	ColPolicyEndDate   = "policy_end_date"
)

// RawSchema is the shape of the dataset as ingested: everything is text
// except policy_amount, and every column may be absent. claim_amount stays
// text because raw files mix numbers with placeholder strings, and the two
// date columns stay text until the date stage parses them.
func RawSchema() j.Schema {
	return j.Schema{Columns: []j.ColumnSchema{
		{Name: ColCustomerName, Type: j.KindString, Nullable: true},
		{Name: ColPhoneNumber, Type: j.KindString, Nullable: true},
		{Name: ColEmail, Type: j.KindString, Nullable: true},
		{Name: ColPolicyType, Type: j.KindString, Nullable: true},
		{Name: ColPolicyAmount, Type: j.KindFloat, Nullable: true},
		{Name: ColClaimAmount, Type: j.KindString, Nullable: true},
		{Name: ColState, Type: j.KindString, Nullable: true},
		{Name: ColPolicyStartDate, Type: j.KindString, Nullable: true},
		{Name: ColPolicyEndDate, Type: j.KindString, Nullable: true},
	}}
}

// CleanSchema is the shape after normalization: claim_amount is numeric and
// the date columns are calendar dates (null meaning absent).
func CleanSchema() j.Schema {
	s := RawSchema()
	cols := make([]j.ColumnSchema, len(s.Columns))
	copy(cols, s.Columns)
	for i := range cols {
		switch cols[i].Name {
		case ColClaimAmount:
			cols[i].Type = j.KindFloat
		case ColPolicyStartDate, ColPolicyEndDate:
			cols[i].Type = j.KindTime
		}
	}
	return j.Schema{Columns: cols}
}
