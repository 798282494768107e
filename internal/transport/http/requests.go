package httptransport

import (
	"net/url"
	"strconv"
	"strings"

	learnerModels "campus/internal/learner/models"
	"campus/internal/query"
	subjectModels "campus/internal/subject/models"
	dErrors "campus/pkg/domain-errors"
)

// Query parameter names shared by the list endpoints.
const (
	paramSortBy     = "sort_by"
	paramSortOrder  = "sort_order"
	paramPageSize   = "page_size"
	paramPageNumber = "page_number"
)

func optionalString(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, key+" must be an integer")
	}
	return &n, nil
}

// parseOptions reads the sort and page parameters. The page stage is only
// enabled when at least one page parameter is present.
func parseOptions(q url.Values) (query.Options, error) {
	var opts query.Options
	if field := optionalString(q, paramSortBy); field != nil {
		opts.Sort = &query.Sort{
			Field:     *field,
			Direction: query.ParseDirection(q.Get(paramSortOrder)),
		}
	}

	size, err := optionalInt(q, paramPageSize)
	if err != nil {
		return query.Options{}, err
	}
	number, err := optionalInt(q, paramPageNumber)
	if err != nil {
		return query.Options{}, err
	}
	if size != nil || number != nil {
		opts.Page = &query.Page{}
		if size != nil {
			opts.Page.Size = *size
		}
		if number != nil {
			opts.Page.Number = *number
		}
	}
	return opts, nil
}

func parseLearnerQuery(q url.Values) (*learnerModels.Criteria, query.Options, error) {
	criteria := &learnerModels.Criteria{
		NameContains:         optionalString(q, "name_contains"),
		EmailContains:        optionalString(q, "email_contains"),
		FieldOfStudy:         optionalString(q, "field_of_study"),
		FieldOfStudyContains: optionalString(q, "field_of_study_contains"),
	}
	var err error
	if criteria.MinAge, err = optionalInt(q, "min_age"); err != nil {
		return nil, query.Options{}, err
	}
	if criteria.MaxAge, err = optionalInt(q, "max_age"); err != nil {
		return nil, query.Options{}, err
	}
	opts, err := parseOptions(q)
	if err != nil {
		return nil, query.Options{}, err
	}
	return criteria, opts, nil
}

func parseSubjectQuery(q url.Values) (*subjectModels.Criteria, query.Options, error) {
	criteria := &subjectModels.Criteria{
		NameContains:     optionalString(q, "name_contains"),
		CodeStartsWith:   optionalString(q, "code_starts_with"),
		EducatorContains: optionalString(q, "educator_contains"),
	}
	var err error
	if criteria.MinCreditHours, err = optionalInt(q, "min_credit_hours"); err != nil {
		return nil, query.Options{}, err
	}
	if criteria.MaxCreditHours, err = optionalInt(q, "max_credit_hours"); err != nil {
		return nil, query.Options{}, err
	}
	opts, err := parseOptions(q)
	if err != nil {
		return nil, query.Options{}, err
	}
	return criteria, opts, nil
}
