package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFormatter_Format(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)

	assert.Equal(t, "Stock not found with id: 42", f.Format(language.English, "stock.not.found", int64(42)))
	assert.Equal(t, "Stock already exists with name: A", f.Format(language.English, "stock.already.exists", "A"))
	assert.Equal(t, "Borsa bulunamadı, isim: NASDAQ", f.Format(language.Turkish, "stock.exchange.not.found", "NASDAQ"))
	assert.Equal(t, "An unexpected error occurred", f.Format(language.English, "no.such.code"))
}

func TestFormatter_Match(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)

	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.English},
		{"tr-TR,tr;q=0.9", language.Turkish},
		{"de-DE", language.English},
		{"fr;q=0.8, tr;q=0.5", language.Turkish},
		{"not a header ;;", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Match(tt.header))
		})
	}
}

func TestNewFormatter_DefaultLocale(t *testing.T) {
	f, err := NewFormatter("tr")
	require.NoError(t, err)
	assert.Equal(t, language.Turkish, f.Match("de"))

	_, err = NewFormatter("ja")
	assert.Error(t, err)
}

func TestFormatter_IdentifiersAreNotGrouped(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)
	assert.Equal(t, "Stock not found with id: 123456", f.Format(language.English, "stock.not.found", int64(123456)))
}
