package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Almacén ", "ALMACEN"},
		{"Libre   utilización\t(login)", "LIBRE UTILIZACION (LOGIN)"},
		{"CLASIFICACIÓN 2", "CLASIFICACION 2"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestSortStringsUsesSpanishCollation(t *testing.T) {
	values := []string{"Zapala", "Ñandú", "Neuquén", "álamo", "Bariloche"}
	SortStrings(values)
	assert.Equal(t, []string{"álamo", "Bariloche", "Neuquén", "Ñandú", "Zapala"}, values)
}

func TestFormatIntGroupsThousands(t *testing.T) {
	assert.Equal(t, "12.345", FormatInt(12345))
	assert.Equal(t, "7", FormatInt(7))
}
