package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/timewindow"
)

func timeParse(t *testing.T, date string) (time.Time, error) {
	t.Helper()
	day, err := timewindow.ParseDate(date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return day, nil
}

func tableNumbers(tables []models.Table) []string {
	numbers := make([]string, 0, len(tables))
	for _, table := range tables {
		numbers = append(numbers, table.TableNumber)
	}
	return numbers
}

func assertKindValidation(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	assert.Error(t, err)
	assert.Equal(t, kind, apperrors.KindOf(err))
}
