package team

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Rejected describes a record dropped during validation.
type Rejected struct {
	Index  int
	Reason string
}

// ValidTeams returns the teams that pass struct validation, in order,
// and a description of every record that was dropped.
func ValidTeams(teams []Team) ([]Team, []Rejected) {
	return keepValid(teams)
}

// ValidDomains returns the domains that pass struct validation.
func ValidDomains(domains []Domain) ([]Domain, []Rejected) {
	return keepValid(domains)
}

func keepValid[T any](records []T) ([]T, []Rejected) {
	v := structValidator()
	kept := make([]T, 0, len(records))
	var rejected []Rejected
	for i, rec := range records {
		if err := v.Struct(rec); err != nil {
			rejected = append(rejected, Rejected{Index: i, Reason: describe(err)})
			continue
		}
		kept = append(kept, rec)
	}
	return kept, rejected
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
}
