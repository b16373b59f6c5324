package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/pkg/apperrors"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func TestValidateRegister(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`, false},
		{"short name", `{"name":"A","email":"ada@example.com","password":"secret1"}`, true},
		{"bad email", `{"name":"Ada","email":"not-an-email","password":"secret1"}`, true},
		{"short password", `{"name":"Ada","email":"ada@example.com","password":"abc"}`, true},
		{"missing fields", `{"email":"ada@example.com"}`, true},
		{"not json", `name=Ada`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(SchemaRegister, []byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 400, apperrors.StatusOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Validate(SchemaLogin, []byte(`{"email":"ada@example.com","password":"x"}`)))
	assert.Error(t, v.Validate(SchemaLogin, []byte(`{"email":"ada@example.com","password":""}`)))
	assert.Error(t, v.Validate(SchemaLogin, []byte(`{"password":"x"}`)))
}

func TestValidateRefresh(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Validate(SchemaRefresh, []byte(`{"refreshToken":"abc"}`)))
	assert.Error(t, v.Validate(SchemaRefresh, []byte(`{"refreshToken":""}`)))
	assert.Error(t, v.Validate(SchemaRefresh, []byte(`{}`)))
}

func TestValidateMovieCreate(t *testing.T) {
	v := newValidator(t)

	valid := `{
		"title": "Dune",
		"duration": 155,
		"releaseDate": "2026-10-22T00:00:00Z",
		"rating": 8.5,
		"cast": ["Chalamet", "Zendaya"],
		"trailerUrl": "https://example.com/trailer"
	}`
	assert.NoError(t, v.Validate(SchemaMovieCreate, []byte(valid)))

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"duration":100,"releaseDate":"2026-10-22T00:00:00Z"}`},
		{"empty title", `{"title":"","duration":100,"releaseDate":"2026-10-22T00:00:00Z"}`},
		{"zero duration", `{"title":"X","duration":0,"releaseDate":"2026-10-22T00:00:00Z"}`},
		{"duration over 20h", `{"title":"X","duration":1201,"releaseDate":"2026-10-22T00:00:00Z"}`},
		{"rating out of range", `{"title":"X","duration":100,"releaseDate":"2026-10-22T00:00:00Z","rating":10.5}`},
		{"cast not strings", `{"title":"X","duration":100,"releaseDate":"2026-10-22T00:00:00Z","cast":[1,2]}`},
		{"bad trailer url", `{"title":"X","duration":100,"releaseDate":"2026-10-22T00:00:00Z","trailerUrl":"ftp://x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, v.Validate(SchemaMovieCreate, []byte(tt.body)))
		})
	}
}

func TestValidateMovieUpdate(t *testing.T) {
	v := newValidator(t)

	// Every field is optional on update, including all at once.
	assert.NoError(t, v.Validate(SchemaMovieUpdate, []byte(`{}`)))
	assert.NoError(t, v.Validate(SchemaMovieUpdate, []byte(`{"title":"New title"}`)))
	assert.Error(t, v.Validate(SchemaMovieUpdate, []byte(`{"title":""}`)))
	assert.Error(t, v.Validate(SchemaMovieUpdate, []byte(`{"duration":"long"}`)))
}

func TestValidateUnknownSchema(t *testing.T) {
	v := newValidator(t)

	err := v.Validate("nope.json", []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.StatusOf(err))
}
