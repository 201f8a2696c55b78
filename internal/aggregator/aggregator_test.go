package aggregator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

func date(t *testing.T, y, m, d int) domain.NormalizedDate {
	t.Helper()
	nd, err := domain.NewNormalizedDate(y, m, d)
	require.NoError(t, err)
	return nd
}

func reg(t *testing.T, id string, month int, authority, region string) domain.Record {
	return domain.Record{
		Kind:       domain.DatasetRegistration,
		BusinessID: id,
		Date:       date(t, 2025, month, 10),
		Authority:  authority,
		Region:     region,
	}
}

func project(t *testing.T, month int, amount int64, pm string, tki int64) domain.Record {
	return domain.Record{
		Kind:          domain.DatasetProject,
		Date:          date(t, 2025, month, 1),
		Investment:    decimal.NewFromInt(amount),
		PMStatus:      pm,
		Authority:     "Gubernur",
		LaborDomestic: tki,
	}
}

func TestAggregate_RegistrationDedup(t *testing.T) {
	records := []domain.Record{
		reg(t, "A", 1, "Gubernur", "Bandung"),
		reg(t, "A", 1, "Gubernur", "Bandung"),
		reg(t, "A", 2, "Gubernur", "Bandung"),
	}

	total, err := Totals(records, domain.FullYear(2025), ScopedTo("Gubernur"))
	require.NoError(t, err)
	assert.Equal(t, 2, total.Count)

	byMonth, err := Aggregate(records, domain.FullYear(2025), []domain.Dimension{domain.DimMonth}, AllAuthorities())
	require.NoError(t, err)
	assert.Equal(t, 1, byMonth.Count("01"))
	assert.Equal(t, 1, byMonth.Count("02"))
}

func TestAggregate_EmptyIDsNotCounted(t *testing.T) {
	records := []domain.Record{
		reg(t, "", 1, "Gubernur", "X"),
		reg(t, "  ", 1, "Gubernur", "X"),
		reg(t, "B", 1, "Gubernur", "X"),
	}
	total, err := Totals(records, domain.Quarter(2025, 1), AllAuthorities())
	require.NoError(t, err)
	assert.Equal(t, 1, total.Count)
}

func TestAggregate_ScopedVersusUnfiltered(t *testing.T) {
	records := []domain.Record{
		reg(t, "001", 1, "Gubernur", "Bandung"),
		reg(t, "001", 1, "Gubernur", "Bandung"),
		reg(t, "002", 2, "Menteri", "Bogor"),
	}
	dims := []domain.Dimension{domain.DimMonth}

	scoped, err := Aggregate(records, domain.Quarter(2025, 1), dims, ScopedTo("Gubernur"))
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.Count("01"))
	assert.Equal(t, 0, scoped.Count("02"))

	unfiltered, err := Aggregate(records, domain.Quarter(2025, 1), dims, AllAuthorities())
	require.NoError(t, err)
	assert.Equal(t, 1, unfiltered.Count("01"))
	assert.Equal(t, 1, unfiltered.Count("02"))

	for _, b := range unfiltered.Buckets() {
		assert.LessOrEqual(t, scoped.Count(b.Key...), b.Count)
	}
}

func TestAggregate_AuthorityMatchIsTrimmedAndCaseInsensitive(t *testing.T) {
	records := []domain.Record{
		reg(t, "1", 3, " GUBERNUR ", "A"),
		reg(t, "2", 3, "gubernur", "A"),
		reg(t, "3", 3, "Bupati", "A"),
	}
	total, err := Totals(records, domain.Quarter(2025, 1), ScopedTo("Gubernur"))
	require.NoError(t, err)
	assert.Equal(t, 2, total.Count)
}

func TestAggregate_PeriodFilter(t *testing.T) {
	records := []domain.Record{
		project(t, 3, 100, "PMDN", 1),
		project(t, 4, 200, "PMDN", 1),
		project(t, 6, 300, "PMA", 1),
		project(t, 7, 400, "PMA", 1),
		{Kind: domain.DatasetProject, Date: date(t, 2024, 5, 1), Investment: decimal.NewFromInt(999), Authority: "Gubernur"},
	}

	tests := []struct {
		spec  domain.PeriodSpec
		count int
		sum   int64
	}{
		{domain.Quarter(2025, 1), 1, 100},
		{domain.Quarter(2025, 2), 2, 500},
		{domain.Semester(2025, 1), 3, 600},
		{domain.Semester(2025, 2), 1, 400},
		{domain.FullYear(2025), 4, 1000},
		{domain.FullYear(2024), 1, 999},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			total, err := Totals(records, tt.spec, ScopedTo("Gubernur"))
			require.NoError(t, err)
			assert.Equal(t, tt.count, total.Count)
			assert.True(t, decimal.NewFromInt(tt.sum).Equal(total.Investment))
		})
	}
}

func TestAggregate_SumsAndOrder(t *testing.T) {
	records := []domain.Record{
		project(t, 1, 1_000_000, "PMDN", 3),
		project(t, 1, 2_500_000, "PMA", 2),
		project(t, 2, 0, "PMDN", 4),
	}
	records[1].LaborForeign = 1

	set, err := Aggregate(records, domain.Quarter(2025, 1), []domain.Dimension{domain.DimPMStatus}, AllAuthorities())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	buckets := set.Buckets()
	assert.Equal(t, []string{"PMDN"}, buckets[0].Key)
	assert.Equal(t, []string{"PMA"}, buckets[1].Key)

	pmdn, ok := set.Lookup("PMDN")
	require.True(t, ok)
	assert.Equal(t, 2, pmdn.Count)
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(pmdn.Investment))
	assert.Equal(t, int64(7), pmdn.LaborDomestic)

	pma, _ := set.Lookup("PMA")
	assert.Equal(t, int64(3), pma.LaborTotal())

	total := set.Total()
	assert.Equal(t, 3, total.Count)
	assert.True(t, decimal.NewFromInt(3_500_000).Equal(total.Investment))
}

func TestAggregate_MultipleDimensions(t *testing.T) {
	records := []domain.Record{
		reg(t, "1", 1, "Gubernur", "Bandung"),
		reg(t, "2", 1, "Gubernur", "Bogor"),
		reg(t, "3", 2, "Gubernur", "Bandung"),
	}
	records[0].PMStatus = "PMA"
	records[1].PMStatus = "PMDN"
	records[2].PMStatus = "PMA"

	set, err := Aggregate(records, domain.FullYear(2025),
		[]domain.Dimension{domain.DimRegion, domain.DimPMStatus}, ScopedTo("Gubernur"))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Count("Bandung", "PMA"))
	assert.Equal(t, 1, set.Count("Bogor", "PMDN"))
	assert.Equal(t, 0, set.Count("Bogor", "PMA"))
}

func TestAggregate_EmptyResult(t *testing.T) {
	set, err := Aggregate(nil, domain.Quarter(2025, 1), []domain.Dimension{domain.DimRegion}, AllAuthorities())
	require.NoError(t, err)
	assert.Zero(t, set.Len())
	assert.Zero(t, set.Total().Count)

	total, err := Totals(nil, domain.Quarter(2025, 1), AllAuthorities())
	require.NoError(t, err)
	assert.Zero(t, total.Count)
}

func TestAggregate_InvalidInput(t *testing.T) {
	_, err := Aggregate(nil, domain.Quarter(2025, 1), nil, FilterOptions{Scope: Scoped})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))

	_, err = Aggregate(nil, domain.Quarter(2025, 5), nil, AllAuthorities())
	require.Error(t, err)
	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
}

func TestTopN(t *testing.T) {
	set := domain.NewBucketSet([]domain.Dimension{domain.DimSector}, []domain.AggregateBucket{
		{Key: []string{"c"}, Count: 1},
		{Key: []string{"b"}, Count: 5},
		{Key: []string{"a"}, Count: 5},
		{Key: []string{"d"}, Count: 3},
	})

	top := TopN(set, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"a"}, top[0].Key)
	assert.Equal(t, []string{"b"}, top[1].Key)
	assert.Equal(t, []string{"d"}, top[2].Key)

	assert.Len(t, TopN(set, 10), 4)
	assert.Equal(t, 4, set.Len())
}

func TestFillMonths(t *testing.T) {
	records := []domain.Record{reg(t, "1", 5, "Gubernur", "A")}
	set, err := Aggregate(records, domain.Quarter(2025, 2), []domain.Dimension{domain.DimMonth}, AllAuthorities())
	require.NoError(t, err)

	filled := FillMonths(set, domain.Quarter(2025, 2))
	buckets := filled.Buckets()
	require.Len(t, buckets, 3)
	assert.Equal(t, []string{"04"}, buckets[0].Key)
	assert.Equal(t, 0, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, []string{"06"}, buckets[2].Key)
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "scoped", Scoped.String())
	assert.Equal(t, "unfiltered", Unfiltered.String())
}
