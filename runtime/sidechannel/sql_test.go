package sidechannel

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jymfony/scriba/runtime/reflection"
)

func setupSQLite(t *testing.T) *SQL {
	t.Helper()

	s, err := OpenSQL(DriverSQLite, ":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQL_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupSQLite(t)

	_, ok := s.ReflectionData(idA)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, idB, sampleClass()))
	require.NoError(t, s.Put(ctx, idA, sampleClass()))

	data, ok := s.ReflectionData(idA)
	require.True(t, ok)
	assert.Equal(t, "App.Greeter", data.FQCN)
	require.Len(t, data.Members, 2)

	ids, err := s.ClassIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []reflection.ClassID{idA, idB}, ids)

	require.NoError(t, s.Delete(ctx, idA))
	_, err = s.Get(ctx, idA)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestSQL_SQLitePutReplaces(t *testing.T) {
	ctx := context.Background()
	s := setupSQLite(t)

	require.NoError(t, s.Put(ctx, idA, sampleClass()))

	updated := sampleClass()
	updated.Docblock = "/** Updated. */"
	require.NoError(t, s.Put(ctx, idA, updated))

	reg := reflection.NewRegistry(s)
	params := reg.ResolveParameters(idA, 1)
	require.Len(t, params, 3)
	assert.Equal(t, float64(2), params[1].Default)

	data, ok := s.ReflectionData(idA)
	require.True(t, ok)
	assert.Equal(t, "/** Updated. */", data.Docblock)
}

func TestSQL_PostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewSQL(db, DriverPostgres, "")
	require.NoError(t, err)

	raw, err := encodeClass(sampleClass())
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reflection_classes (id, fqcn, data) VALUES ($1, $2, $3)")).
		WithArgs(string(idA), "App.Greeter", string(raw)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM reflection_classes WHERE id = $1")).
		WithArgs(string(idA)).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(string(raw)))

	require.NoError(t, s.Put(context.Background(), idA, sampleClass()))

	data, ok := s.ReflectionData(idA)
	require.True(t, ok)
	assert.Equal(t, "Greeter", data.ClassName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_QueryFailureIsAbsence(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewSQL(db, DriverPgx, "classes")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM classes WHERE id = $1")).
		WithArgs(string(idA)).
		WillReturnError(sql.ErrConnDone)

	_, ok := s.ReflectionData(idA)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSQL_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQL(nil, DriverSQLite, "")
	assert.Error(t, err)

	_, err = NewSQL(db, "mysql", "")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)

	for _, name := range []string{"1abc", "drop table", "a;b", "x-y"} {
		_, err = NewSQL(db, DriverSQLite, name)
		assert.Error(t, err, name)
	}

	_, err = NewSQL(db, DriverSQLite, "_classes2")
	assert.NoError(t, err)
}
