package httptransport

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/internal/query"
	dErrors "campus/pkg/domain-errors"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  query.Options
	}{
		{name: "nothing set", query: "", want: query.Options{}},
		{
			name:  "sort defaults to ascending",
			query: "sort_by=age",
			want:  query.Options{Sort: &query.Sort{Field: "age", Direction: query.Ascending}},
		},
		{
			name:  "sort order is case insensitive",
			query: "sort_by=name&sort_order=Desc",
			want:  query.Options{Sort: &query.Sort{Field: "name", Direction: query.Descending}},
		},
		{
			name:  "page number alone enables paging",
			query: "page_number=2",
			want:  query.Options{Page: &query.Page{Number: 2}},
		},
		{
			name:  "page size and number",
			query: "page_size=5&page_number=1",
			want:  query.Options{Page: &query.Page{Size: 5, Number: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, err := parseOptions(q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-numeric page size is a bad request", func(t *testing.T) {
		_, err := parseOptions(url.Values{"page_size": {"ten"}})
		assert.ErrorIs(t, err, dErrors.New(dErrors.CodeBadRequest, "page_size must be an integer"))
	})
}

func TestParseLearnerQuery(t *testing.T) {
	q := url.Values{
		"name_contains":  {"  sal "},
		"min_age":        {"21"},
		"email_contains": {""},
	}
	criteria, _, err := parseLearnerQuery(q)
	require.NoError(t, err)
	require.NotNil(t, criteria.NameContains)
	assert.Equal(t, "sal", *criteria.NameContains)
	require.NotNil(t, criteria.MinAge)
	assert.Equal(t, 21, *criteria.MinAge)
	assert.Nil(t, criteria.EmailContains)
	assert.Nil(t, criteria.MaxAge)

	_, _, err = parseLearnerQuery(url.Values{"max_age": {"old"}})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestParseSubjectQuery(t *testing.T) {
	criteria, opts, err := parseSubjectQuery(url.Values{
		"code_starts_with": {"cs"},
		"max_credit_hours": {"4"},
		"sort_by":          {"credit_hours"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs", *criteria.CodeStartsWith)
	assert.Equal(t, 4, *criteria.MaxCreditHours)
	assert.Equal(t, "credit_hours", opts.Sort.Field)

	_, _, err = parseSubjectQuery(url.Values{"min_credit_hours": {"x"}})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
