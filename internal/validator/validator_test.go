package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		raw     string
		want    []uint
		wantErr bool
	}{
		{raw: "7", want: []uint{7}},
		{raw: "3, 1,2", want: []uint{3, 1, 2}},
		{raw: "", wantErr: true},
		{raw: "1,,2", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-4", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ids, err := ParseIDList(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

type questionQuery struct {
	IDs    string `form:"ids" validate:"required,id_list"`
	Course uint   `json:"course_id" validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(questionQuery{IDs: "1,2", Course: 4}))

	err := v.Validate(questionQuery{IDs: "1,x"})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, "ids", errs[0].Field)
	assert.Equal(t, "id_list", errs[0].Rule)
	assert.Equal(t, "course_id", errs[1].Field)
	assert.Equal(t, "must be greater than 0", errs[1].Message)
}
