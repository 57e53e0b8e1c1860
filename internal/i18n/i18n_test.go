package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	require.Equal(t, LocaleEN, Negotiate(""))
	require.Equal(t, LocaleEN, Negotiate("garbage;;"))
	require.Equal(t, LocaleNL, Negotiate("nl"))
	require.Equal(t, LocaleNL, Negotiate("nl-BE,nl;q=0.9,en;q=0.8"))
	require.Equal(t, LocaleFR, Negotiate("fr-FR,fr;q=0.9"))
	require.Equal(t, LocaleEN, Negotiate("de-DE,de;q=0.9"))
}

func TestPick(t *testing.T) {
	require.Equal(t, "Pasteitjes", Pick("Patties", "Pasteitjes", "Chaussons", LocaleNL))
	require.Equal(t, "Chaussons", Pick("Patties", "Pasteitjes", "Chaussons", LocaleFR))
	require.Equal(t, "Patties", Pick("Patties", "Pasteitjes", "Chaussons", LocaleEN))
	// Empty translations fall back to English.
	require.Equal(t, "Patties", Pick("Patties", "", "", LocaleNL))
	require.Equal(t, "Patties", Pick("Patties", "", "", LocaleFR))
}
