// Package dataio generates deterministic dirty insurance-policy datasets
// for examples, tests, and benchmarks. The junk it injects mirrors what the
// cleaning rules handle: placeholder literals, mixed date formats, free-form
// casing, negative and missing amounts.
package dataio

import (
	"fmt"
	"math/rand"

	"github.com/insurekit/policyclean/pkg/io/csvio"
	"github.com/insurekit/policyclean/pkg/policy"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

var (
	firstNames = []string{"john", "MARY", "  carlos", "li-wei", "o'brien", "Ana Maria", "peter", "SUSAN "}
	lastNames  = []string{"smith!!", "Nguyen", "  garcia", "MÜLLER", "o'connor", "Lee", "brown#", "DAVIS"}

	phones = []string{
		"(212) 555-0187",
		"212-555-0134",
		"+1 646 555 0109",
		"6465550172",
		"555-019", // too short to salvage
		"NULL",
		"",
	}

	emails = []string{
		"john.smith@example.com",
		"mary_n@mail.example.org",
		"not-an-email",
		"bob at example.com",
		"ana@sub.example.co",
		"NULL",
		"",
	}

	policyTypes = []string{"auto", "Auto", "health", "Medical", "travel", "Home", "life", "Boat Insurance", ""}

	states = []string{"ca", "NY", "texas", "ohio", "Pennsylvania", "FL", "il", "Germany", "puerto rico", ""}

	dateForms = []func(r *rand.Rand) string{
		func(r *rand.Rand) string { return fmt.Sprintf("20%02d-%02d-%02d", r.Intn(24), 1+r.Intn(12), 1+r.Intn(28)) },
		func(r *rand.Rand) string { return fmt.Sprintf("%02d/%02d/20%02d", 1+r.Intn(12), 1+r.Intn(28), r.Intn(24)) },
		func(r *rand.Rand) string { return fmt.Sprintf("%02d-%02d-20%02d", 1+r.Intn(12), 1+r.Intn(28), r.Intn(24)) },
		func(r *rand.Rand) string { return fmt.Sprintf("%02d-%02d-20%02d", 1+r.Intn(28), 1+r.Intn(12), r.Intn(24)) },
		func(r *rand.Rand) string { return fmt.Sprintf("20%02d/%02d/%02d", r.Intn(24), 1+r.Intn(12), 1+r.Intn(28)) },
		func(r *rand.Rand) string { return fmt.Sprintf("20%02d%02d%02d", r.Intn(24), 1+r.Intn(12), 1+r.Intn(28)) },
		func(r *rand.Rand) string { return "Invalid Date" },
		func(r *rand.Rand) string { return "NULL" },
		func(r *rand.Rand) string { return "" },
	}
)

// DirtyPolicies builds n raw policy records with the standard mess. The same
// seed always yields the same frame.
func DirtyPolicies(n int, seed int64) *j.Frame {
	r := rand.New(rand.NewSource(seed))
	f := j.NewFrame(policy.RawSchema())
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		setText(f, i, policy.ColCustomerName, firstNames[r.Intn(len(firstNames))]+" "+lastNames[r.Intn(len(lastNames))])
		setText(f, i, policy.ColPhoneNumber, phones[r.Intn(len(phones))])
		setText(f, i, policy.ColEmail, emails[r.Intn(len(emails))])
		setText(f, i, policy.ColPolicyType, policyTypes[r.Intn(len(policyTypes))])
		switch r.Intn(10) {
		case 0:
			// leave absent; fills from the mean
		case 1:
			_ = f.SetCell(i, policy.ColPolicyAmount, -50 - r.Float64()*500)
		default:
			_ = f.SetCell(i, policy.ColPolicyAmount, r.Float64()*2000)
		}
		switch r.Intn(6) {
		case 0:
			setText(f, i, policy.ColClaimAmount, "NULL")
		case 1:
			setText(f, i, policy.ColClaimAmount, "N/A")
		case 2:
			// leave absent
		default:
			setText(f, i, policy.ColClaimAmount, fmt.Sprintf("%.2f", r.Float64()*900))
		}
		setText(f, i, policy.ColState, states[r.Intn(len(states))])
		setText(f, i, policy.ColPolicyStartDate, dateForms[r.Intn(len(dateForms))](r))
		setText(f, i, policy.ColPolicyEndDate, dateForms[r.Intn(len(dateForms))](r))
	}
	return f
}

func setText(f *j.Frame, row int, col, v string) {
	if v == "" {
		return // stays absent
	}
	_ = f.SetCell(row, col, v)
}

// WriteSampleCSV materializes a generated dirty dataset as a CSV file.
func WriteSampleCSV(path string, n int, seed int64) error {
	return csvio.WriteAll(path, DirtyPolicies(n, seed), csvio.WriterOptions{})
}
