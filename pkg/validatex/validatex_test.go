package validatex

import (
	"testing"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Title string `json:"title" validate:"required"`
}

type request struct {
	Email   string  `json:"email" validate:"required,email"`
	Age     int     `json:"age" validate:"omitempty,min=18"`
	Entries []entry `json:"entries" validate:"dive"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(request{Email: "a@b.co", Entries: []entry{{Title: "x"}}}))
	})

	t.Run("reports json field paths", func(t *testing.T) {
		err := Struct(request{Email: "nope", Age: 3, Entries: []entry{{}}})
		require.Error(t, err)
		assert.True(t, errx.IsType(err, errx.TypeValidation))

		var e *errx.Error
		require.ErrorAs(t, err, &e)
		fields, ok := e.Details["fields"].(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "email must be a valid email", fields["email"])
		assert.Equal(t, "age must be at least 18", fields["age"])
		assert.Equal(t, "title is required", fields["entries[0].title"])
	})
}
