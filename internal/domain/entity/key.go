package entity

import "golang.org/x/text/cases"

// FoldKey normaliza s para comparaciones sin distinguir mayúsculas ("Fix Pump" == "fix pump").
// Se persiste en columnas *_key con índice UNIQUE.
func FoldKey(s string) string {
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	return cases.Fold().String(s)
}
