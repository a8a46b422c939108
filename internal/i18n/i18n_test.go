package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationsComplete(t *testing.T) {
	for lang, msgs := range translations {
		v := reflect.ValueOf(msgs)
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(), "%s: %s is empty", lang, v.Type().Field(i).Name)
		}
	}
}

func TestSetLanguage(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(Italian)
	assert.Equal(t, Italian, GetLanguage())
	assert.Equal(t, "Nota eliminata", T().NoteDeleted)

	SetLanguage("xx")
	assert.Equal(t, Italian, GetLanguage(), "unknown languages are ignored")

	SetLanguage(English)
	assert.Equal(t, "Note deleted successfully", T().NoteDeleted)
}
