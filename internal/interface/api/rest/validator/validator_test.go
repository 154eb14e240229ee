package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username *string `json:"username" validate:"required,notblank,max=10,username"`
	Email    *string `json:"email" validate:"omitempty,optional_email"`
	Phone    *string `json:"phone_number" validate:"omitempty,phone"`
	Birth    *string `json:"date_of_birth" validate:"omitempty,date"`
	Role     *string `json:"role" validate:"omitempty,role"`
}

func ptr(s string) *string { return &s }

func TestStruct(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want Errors
	}{
		{
			name: "valid",
			in: sample{
				Username: ptr("py.dev+1"),
				Email:    ptr("py@example.com"),
				Phone:    ptr("+442071234567"),
				Birth:    ptr("2000-01-01"),
				Role:     ptr("admin"),
			},
		},
		{
			name: "empty optional values are allowed",
			in:   sample{Username: ptr("u"), Email: ptr(""), Phone: ptr(""), Birth: ptr("")},
		},
		{
			name: "email padded with spaces",
			in:   sample{Username: ptr("u"), Email: ptr("  py@example.com ")},
		},
		{
			name: "missing username",
			in:   sample{},
			want: Errors{"username": {"This field is required."}},
		},
		{
			name: "blank username",
			in:   sample{Username: ptr("  ")},
			want: Errors{"username": {"This field may not be blank."}},
		},
		{
			name: "bad values",
			in: sample{
				Username: ptr("way-too-long-name"),
				Email:    ptr("nope"),
				Phone:    ptr("12345"),
				Birth:    ptr("01/02/2000"),
				Role:     ptr("root"),
			},
			want: Errors{
				"username":      {"Ensure this field has no more than 10 characters."},
				"email":         {"Enter a valid email address."},
				"phone_number":  {"Enter a valid phone number."},
				"date_of_birth": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
				"role":          {`"root" is not a valid choice.`},
			},
		},
		{
			name: "username charset",
			in:   sample{Username: ptr("a b")},
			want: Errors{"username": {"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{"b": {"two"}, "a": {"one", "uno"}}
	assert.Equal(t, "a: one uno; b: two", errs.Error())
}

func TestBindError(t *testing.T) {
	var dst struct {
		IsActive bool `json:"is_active"`
	}
	err := json.Unmarshal([]byte(`{"is_active":"yes"}`), &dst)
	require.Error(t, err)
	assert.Equal(t, Errors{"is_active": {"Must be a valid boolean."}}, BindError(err))

	err = json.Unmarshal([]byte(`{`), &dst)
	require.Error(t, err)
	var errs Errors
	require.ErrorAs(t, BindError(err), &errs)
	assert.Contains(t, errs, "detail")
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	for _, s := range []string{"", "0", "-1", "abc", "1.5", "+7", "9223372036854775808", "18446744073709551615"} {
		_, ok = ParseID(s)
		assert.False(t, ok, s)
	}

	id, ok = ParseID("9223372036854775807")
	assert.True(t, ok)
	assert.EqualValues(t, uint64(9223372036854775807), id)
}

func TestParseAge(t *testing.T) {
	age, err := ParseAge("")
	require.NoError(t, err)
	assert.Nil(t, age)

	age, err = ParseAge("29")
	require.NoError(t, err)
	require.NotNil(t, age)
	assert.Equal(t, 29, *age)

	_, err = ParseAge("old")
	assert.Equal(t, Errors{"age": {"A valid integer is required."}}, err)
}
